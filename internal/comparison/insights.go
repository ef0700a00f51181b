package comparison

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// entry pairs a ranked score with the risk factors found while scoring it
type entry struct {
	score types.CandidateScore
	risks []string
}

func (e *Engine) risks(profile *types.CandidateProfile, dims types.DimensionScores) []string {
	var factors []string
	if dims.Personality < e.cfg.RiskCut {
		factors = append(factors, fmt.Sprintf("Personality fit below target (%.1f)", dims.Personality))
	}
	if dims.CulturalFit < e.cfg.RiskCut {
		factors = append(factors, fmt.Sprintf("Cultural fit below target (%.1f)", dims.CulturalFit))
	}
	if n := profile.Personality.Neuroticism; n > e.cfg.RiskNeuroticism {
		factors = append(factors, fmt.Sprintf("Elevated neuroticism (%.0f)", n))
	}
	return factors
}

// insights derives set-level observations from entries already in rank order.
func (e *Engine) insights(entries []entry) types.ComparisonInsights {
	scores := make([]float64, len(entries))
	for i, en := range entries {
		scores[i] = en.score.OverallScore
	}

	risks := []types.RiskFactor{}
	for _, en := range entries {
		if len(en.risks) == 0 {
			continue
		}
		risks = append(risks, types.RiskFactor{
			CandidateID:   en.score.CandidateID,
			CandidateName: en.score.CandidateName,
			Factors:       en.risks,
		})
	}

	dist := distribution(scores)
	return types.ComparisonInsights{
		Distribution:       dist,
		KeyDifferentiators: e.differentiators(entries),
		Recommendations:    e.poolRecommendations(entries, dist),
		RiskFactors:        risks,
	}
}

// distribution summarises scores with the population standard deviation.
func distribution(scores []float64) types.ScoreDistribution {
	if len(scores) == 0 {
		return types.ScoreDistribution{}
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)

	n := len(sorted)
	avg := mean(sorted...)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	variance := 0.0
	for _, s := range sorted {
		variance += (s - avg) * (s - avg)
	}
	variance /= float64(n)

	return types.ScoreDistribution{
		Mean:   round2(avg),
		Median: round2(median),
		Min:    sorted[0],
		Max:    sorted[n-1],
		StdDev: round2(math.Sqrt(variance)),
	}
}

// differentiators compares rank 1 with rank 2 only.
func (e *Engine) differentiators(entries []entry) []types.Differentiator {
	out := []types.Differentiator{}
	if len(entries) < 2 {
		return out
	}
	top, runnerUp := entries[0].score, entries[1].score

	for _, name := range types.DimensionNames {
		a, b := top.Scores.Get(name), runnerUp.Scores.Get(name)
		diff := round2(a - b)
		if math.Abs(diff) <= e.cfg.DifferentiatorMin {
			continue
		}
		desc := fmt.Sprintf("%s leads on %s by %.1f points", top.CandidateName, dimensionLabels[name], diff)
		if diff < 0 {
			desc = fmt.Sprintf("%s leads on %s by %.1f points despite ranking lower", runnerUp.CandidateName, dimensionLabels[name], -diff)
		}
		out = append(out, types.Differentiator{
			Dimension:     name,
			TopScore:      a,
			RunnerUpScore: b,
			Difference:    diff,
			Description:   desc,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Difference) > math.Abs(out[j].Difference)
	})
	if e.cfg.MaxDifferentiator > 0 && len(out) > e.cfg.MaxDifferentiator {
		out = out[:e.cfg.MaxDifferentiator]
	}
	return out
}

func (e *Engine) poolRecommendations(entries []entry, dist types.ScoreDistribution) []string {
	switch len(entries) {
	case 0:
		return []string{"No candidates to compare"}
	case 1:
		c := entries[0].score
		return []string{fmt.Sprintf("Only %s was evaluated; widen the pool before deciding", c.CandidateName)}
	}

	var out []string
	top, runnerUp := entries[0].score, entries[1].score
	gap := round2(top.OverallScore - runnerUp.OverallScore)
	switch {
	case gap < e.cfg.CloseRaceGap:
		out = append(out, fmt.Sprintf("Close race between %s and %s (gap %.1f); interview both before deciding",
			top.CandidateName, runnerUp.CandidateName, gap))
	case gap >= e.cfg.StandoutGap:
		out = append(out, fmt.Sprintf("%s is a clear standout with a %.1f point lead", top.CandidateName, gap))
	default:
		out = append(out, fmt.Sprintf("%s leads; confirm with a final interview", top.CandidateName))
	}
	if dist.Mean < e.cfg.WeakPoolMean {
		out = append(out, fmt.Sprintf("Overall pool is weak (mean %.1f); consider expanding sourcing", dist.Mean))
	}
	return out
}
