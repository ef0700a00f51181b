package stages

import (
	"fmt"
	"math"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// ByStage holds at most one final score per stage
type ByStage map[types.StageID]*types.StageKSAScore

// Aggregation is the cross-stage rollup of a candidate's final stage scores
type Aggregation struct {
	KSAProgression       map[string]types.Progression
	AttributeProgression map[string]types.Progression
	ConsensusScores      map[string]float64
	Discrepancies        []string
	FinalScore           float64
	FinalRecommendation  types.Recommendation
	CompletedStages      int
}

// SelectLatest picks, per stage, the most recently completed score. Drafts are ignored.
func SelectLatest(scores []types.StageKSAScore) ByStage {
	selected := ByStage{}
	for i := range scores {
		s := scores[i]
		if !s.Status.IsFinal() {
			continue
		}
		current, ok := selected[s.StageID]
		if !ok || completedAt(s).After(completedAt(*current)) {
			c := clone(s)
			selected[s.StageID] = &c
		}
	}
	return selected
}

func completedAt(s types.StageKSAScore) time.Time {
	if s.CompletedAt != nil {
		return *s.CompletedAt
	}
	return s.UpdatedAt
}

// CompletedStageCount counts the distinct stages with a completed or reviewed score.
func CompletedStageCount(scores []types.StageKSAScore) int {
	seen := make(map[types.StageID]bool)
	for _, s := range scores {
		if s.Status.IsFinal() {
			seen[s.StageID] = true
		}
	}
	return len(seen)
}

// Aggregate computes progressions, consensus, discrepancies and the final verdict.
func Aggregate(byStage ByStage, cfg Config) Aggregation {
	agg := Aggregation{
		KSAProgression:       make(map[string]types.Progression, len(types.KSANames)),
		AttributeProgression: make(map[string]types.Progression, len(types.AttributeNames)),
		ConsensusScores:      make(map[string]float64, len(types.AttributeNames)),
		Discrepancies:        Discrepancies(byStage, cfg),
		FinalScore:           WeightedFinalScore(byStage, cfg),
		FinalRecommendation:  FinalRecommendation(byStage),
		CompletedStages:      len(present(byStage)),
	}

	for _, name := range types.KSANames {
		agg.KSAProgression[name] = progression(byStage, cfg, func(s *types.StageKSAScore) float64 {
			return s.KSAScores.Get(name)
		})
	}
	for _, name := range types.AttributeNames {
		agg.AttributeProgression[name] = progression(byStage, cfg, func(s *types.StageKSAScore) float64 {
			return s.AttributeScores.Get(name)
		})
		values := attributeValues(byStage, name)
		if len(values) > 0 {
			agg.ConsensusScores[name] = round1(mean(values))
		}
	}
	return agg
}

func progression(byStage ByStage, cfg Config, value func(*types.StageKSAScore) float64) types.Progression {
	slots := make([]*float64, len(StageOrder))
	for i, id := range StageOrder {
		if s := byStage[id]; s != nil {
			v := value(s)
			slots[i] = &v
		}
	}
	return types.Progression{
		Stage1: slots[0],
		Stage2: slots[1],
		Stage3: slots[2],
		Trend:  DetermineTrend(slots, cfg),
	}
}

// DetermineTrend classifies stage-ordered values; nil entries are missing stages.
// Fewer than two values is always stable.
func DetermineTrend(values []*float64, cfg Config) types.Trend {
	var xs, ys []float64
	for i, v := range values {
		if v != nil {
			xs = append(xs, float64(i))
			ys = append(ys, *v)
		}
	}
	if len(ys) < 2 {
		return types.TrendStable
	}

	var change float64
	switch cfg.TrendMethod {
	case TrendSlope:
		change = slope(xs, ys) * (xs[len(xs)-1] - xs[0])
	default:
		change = ys[len(ys)-1] - ys[0]
	}

	switch {
	case change > cfg.TrendThreshold:
		return types.TrendImproving
	case change < -cfg.TrendThreshold:
		return types.TrendDeclining
	default:
		return types.TrendStable
	}
}

// slope is the least-squares gradient of ys over xs.
func slope(xs, ys []float64) float64 {
	mx, my := mean(xs), mean(ys)
	num, den := 0.0, 0.0
	for i := range xs {
		num += (xs[i] - mx) * (ys[i] - my)
		den += (xs[i] - mx) * (xs[i] - mx)
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Discrepancies flags attributes whose spread across stages exceeds cfg.DiscrepancyThreshold.
func Discrepancies(byStage ByStage, cfg Config) []string {
	out := []string{}
	for _, name := range types.AttributeNames {
		values := attributeValues(byStage, name)
		if len(values) < 2 {
			continue
		}
		lo, hi := values[0], values[0]
		for _, v := range values[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if hi-lo > cfg.DiscrepancyThreshold {
			out = append(out, fmt.Sprintf("%s: scores range from %.1f - %.1f across stages", name, lo, hi))
		}
	}
	return out
}

// WeightedFinalScore weights each present stage's overall score, renormalising over
// the stages present. It returns 0 when no stage is present.
func WeightedFinalScore(byStage ByStage, cfg Config) float64 {
	total, weightSum := 0.0, 0.0
	for _, id := range present(byStage) {
		w := cfg.Weights.Get(id)
		total += w * byStage[id].OverallScore
		weightSum += w
	}
	if weightSum <= 0 {
		return 0
	}
	return round1(total / weightSum)
}

// FinalRecommendation prefers the technical interview verdict; otherwise the most
// common verdict wins, with ties going to the earliest stage. It is empty when no stage is present.
func FinalRecommendation(byStage ByStage) types.Recommendation {
	if s := byStage[types.Stage2]; s != nil && s.OverallRecommendation != "" {
		return s.OverallRecommendation
	}

	counts := make(map[types.Recommendation]int)
	var order []types.Recommendation
	for _, id := range present(byStage) {
		rec := byStage[id].OverallRecommendation
		if rec == "" {
			continue
		}
		if counts[rec] == 0 {
			order = append(order, rec)
		}
		counts[rec]++
	}

	var best types.Recommendation
	for _, rec := range order {
		if counts[rec] > counts[best] {
			best = rec
		}
	}
	return best
}

func present(byStage ByStage) []types.StageID {
	ids := make([]types.StageID, 0, len(StageOrder))
	for _, id := range StageOrder {
		if byStage[id] != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func attributeValues(byStage ByStage, name string) []float64 {
	var values []float64
	for _, id := range present(byStage) {
		values = append(values, byStage[id].AttributeScores.Get(name))
	}
	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
