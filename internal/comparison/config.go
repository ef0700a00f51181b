// Package comparison ranks a set of candidates against a weighted set of dimensions.
package comparison

import (
	"fmt"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/evaluation"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// TraitRange is the ideal band for one personality trait on the 0-100 scale
type TraitRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// IdealPersonality holds the ideal band per Big Five trait
type IdealPersonality struct {
	Openness          TraitRange `json:"openness"`
	Conscientiousness TraitRange `json:"conscientiousness"`
	Extraversion      TraitRange `json:"extraversion"`
	Agreeableness     TraitRange `json:"agreeableness"`
	Neuroticism       TraitRange `json:"neuroticism"`
}

// RecommendationTiers are the lower bounds for each recommendation sentence
type RecommendationTiers struct {
	Highly      float64 `json:"highly"`
	Recommended float64 `json:"recommended"`
	Consider    float64 `json:"consider"`
	Borderline  float64 `json:"borderline"`
}

// Config holds the tunables of the comparison engine
type Config struct {
	Proficiency evaluation.ProficiencyValues `json:"proficiency"`
	Ideal       IdealPersonality             `json:"ideal_personality"`
	Tiers       RecommendationTiers          `json:"tiers"`

	StrengthCut   float64 `json:"strength_cut"`
	ConcernCut    float64 `json:"concern_cut"`
	MaxHighlights int     `json:"max_highlights"`

	HighNeuroticism       float64 `json:"high_neuroticism"`
	HighConscientiousness float64 `json:"high_conscientiousness"`
	HighOpenness          float64 `json:"high_openness"`
	JuniorYears           float64 `json:"junior_years"`
	SeniorYears           float64 `json:"senior_years"`

	CloseRaceGap      float64 `json:"close_race_gap"`
	StandoutGap       float64 `json:"standout_gap"`
	WeakPoolMean      float64 `json:"weak_pool_mean"`
	DifferentiatorMin float64 `json:"differentiator_min"`
	MaxDifferentiator int     `json:"max_differentiators"`

	RiskCut         float64 `json:"risk_cut"`
	RiskNeuroticism float64 `json:"risk_neuroticism"`

	// Now stamps GeneratedAt and dates open-ended positions; defaults to time.Now
	Now func() time.Time `json:"-"`
}

// DefaultCriteria returns the standard comparison weights.
func DefaultCriteria() types.ComparisonCriteria {
	return types.ComparisonCriteria{
		TechnicalSkills: 0.30,
		Experience:      0.25,
		CulturalFit:     0.20,
		Personality:     0.15,
		GrowthPotential: 0.10,
	}
}

// MergeCriteria overlays the non-nil override fields onto base.
func MergeCriteria(base types.ComparisonCriteria, overrides *types.CriteriaOverrides) types.ComparisonCriteria {
	if overrides == nil {
		return base
	}
	merged := base
	if overrides.TechnicalSkills != nil {
		merged.TechnicalSkills = *overrides.TechnicalSkills
	}
	if overrides.Experience != nil {
		merged.Experience = *overrides.Experience
	}
	if overrides.CulturalFit != nil {
		merged.CulturalFit = *overrides.CulturalFit
	}
	if overrides.Personality != nil {
		merged.Personality = *overrides.Personality
	}
	if overrides.GrowthPotential != nil {
		merged.GrowthPotential = *overrides.GrowthPotential
	}
	return merged
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		Proficiency: evaluation.DefaultConfig().Proficiency,
		Ideal: IdealPersonality{
			Openness:          TraitRange{Low: 60, High: 90},
			Conscientiousness: TraitRange{Low: 65, High: 95},
			Extraversion:      TraitRange{Low: 40, High: 80},
			Agreeableness:     TraitRange{Low: 50, High: 85},
			Neuroticism:       TraitRange{Low: 10, High: 40},
		},
		Tiers: RecommendationTiers{Highly: 8.5, Recommended: 7.5, Consider: 6.5, Borderline: 5.5},

		StrengthCut:   8.0,
		ConcernCut:    5.0,
		MaxHighlights: 5,

		HighNeuroticism:       70,
		HighConscientiousness: 85,
		HighOpenness:          85,
		JuniorYears:           2,
		SeniorYears:           8,

		CloseRaceGap:      1.0,
		StandoutGap:       2.0,
		WeakPoolMean:      6.0,
		DifferentiatorMin: 1.0,
		MaxDifferentiator: 3,

		RiskCut:         5.0,
		RiskNeuroticism: 75,
	}
}

// Validate checks the personality bands and recommendation tiers.
func (c Config) Validate() error {
	ranges := map[string]TraitRange{
		"openness":          c.Ideal.Openness,
		"conscientiousness": c.Ideal.Conscientiousness,
		"extraversion":      c.Ideal.Extraversion,
		"agreeableness":     c.Ideal.Agreeableness,
		"neuroticism":       c.Ideal.Neuroticism,
	}
	for name, r := range ranges {
		if r.Low > r.High || r.Low < 0 || r.High > 100 {
			return fmt.Errorf("ideal %s range %.0f-%.0f is invalid", name, r.Low, r.High)
		}
	}
	t := c.Tiers
	if !(t.Highly >= t.Recommended && t.Recommended >= t.Consider && t.Consider >= t.Borderline) {
		return fmt.Errorf("recommendation tiers must be descending")
	}
	if c.MaxHighlights < 0 || c.MaxDifferentiator < 0 {
		return fmt.Errorf("highlight and differentiator limits must be non-negative")
	}
	return nil
}
