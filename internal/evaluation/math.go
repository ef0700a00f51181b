package evaluation

import (
	"math"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// clampScore bounds a score to [0,10]; NaN collapses to 0.
func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// finalize clamps then rounds a score.
func finalize(v float64) float64 {
	return round1(clampScore(v))
}

// mean returns the average of values, or 0 for an empty list.
func mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// TotalYears returns the candidate's years of experience. The declared total
// wins; otherwise position durations are summed, with open-ended positions
// running until asOf. A zero asOf leaves open-ended positions uncounted.
func TotalYears(exp types.Experience, asOf time.Time) float64 {
	if exp.TotalYears > 0 {
		return exp.TotalYears
	}

	months := 0
	for _, p := range exp.Positions() {
		start, err := time.Parse("2006-01", p.StartDate)
		if err != nil {
			continue
		}
		var end time.Time
		if p.EndDate != "" {
			end, err = time.Parse("2006-01", p.EndDate)
			if err != nil {
				continue
			}
		} else {
			if asOf.IsZero() {
				continue
			}
			end = asOf
		}
		diff := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if diff > 0 {
			months += diff
		}
	}
	return float64(months) / 12
}

// traitValue returns a personality trait on the 0-100 scale.
func traitValue(p types.PersonalityProfile, trait string) float64 {
	switch trait {
	case TraitOpenness:
		return p.Openness
	case TraitConscientiousness:
		return p.Conscientiousness
	case TraitExtraversion:
		return p.Extraversion
	case TraitAgreeableness:
		return p.Agreeableness
	case TraitEmotionalStability:
		return 100 - p.Neuroticism
	}
	return p.Openness
}
