// Package report assembles multi-stage evaluation reports from completed stage scores.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// Limits on aggregated highlights
const (
	maxStrengths  = 5
	maxWeaknesses = 3
	maxRedFlags   = 2
)

// Build assembles the report for one candidate and job category. Scores for other
// candidates or categories are ignored, as are drafts; for each stage the most
// recently completed score is used. Missing stages are left nil.
func Build(candidateID, jobCategory string, scores []types.StageKSAScore, cfg stages.Config, now time.Time) types.MultiStageEvaluationReport {
	relevant := make([]types.StageKSAScore, 0, len(scores))
	for _, s := range scores {
		if s.CandidateID == candidateID && s.JobCategory == jobCategory {
			relevant = append(relevant, s)
		}
	}
	byStage := stages.SelectLatest(relevant)
	agg := stages.Aggregate(byStage, cfg)

	var strengths, weaknesses, redFlags [][]string
	notes := make(map[types.StageID]string)
	for _, id := range stages.StageOrder {
		s := byStage[id]
		if s == nil {
			continue
		}
		strengths = append(strengths, s.Strengths)
		weaknesses = append(weaknesses, s.Weaknesses)
		redFlags = append(redFlags, s.RedFlags)
		if n := strings.TrimSpace(s.Notes); n != "" {
			notes[id] = n
		}
	}

	concerns := append(topByFrequency(weaknesses, maxWeaknesses), topByFrequency(redFlags, maxRedFlags)...)

	r := types.MultiStageEvaluationReport{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		JobCategory: jobCategory,
		StageScores: types.StageScoreRefs{
			Stage1: byStage[types.Stage1],
			Stage2: byStage[types.Stage2],
			Stage3: byStage[types.Stage3],
		},
		KSAProgression:       agg.KSAProgression,
		AttributeProgression: agg.AttributeProgression,
		KeyStrengths:         topByFrequency(strengths, maxStrengths),
		KeyConcerns:          concerns,
		ConsensusScores:      agg.ConsensusScores,
		Discrepancies:        agg.Discrepancies,
		StageNotes:           notes,
		FinalScore:           agg.FinalScore,
		FinalRecommendation:  agg.FinalRecommendation,
		CompletedStages:      agg.CompletedStages,
		IsComplete:           agg.CompletedStages == len(stages.StageOrder),
		GeneratedAt:          now,
	}
	r.Summary = summarize(r)
	return r
}

func summarize(r types.MultiStageEvaluationReport) string {
	if r.CompletedStages == 0 {
		return fmt.Sprintf("No completed stages for candidate %s in %s.", r.CandidateID, r.JobCategory)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Completed %d of %d stages with a weighted final score of %.1f (%s).",
		r.CompletedStages, len(stages.StageOrder), r.FinalScore, r.FinalRecommendation)

	var improving, declining []string
	for _, name := range types.AttributeNames {
		switch r.AttributeProgression[name].Trend {
		case types.TrendImproving:
			improving = append(improving, name)
		case types.TrendDeclining:
			declining = append(declining, name)
		}
	}
	if len(improving) > 0 {
		fmt.Fprintf(&b, " Improving: %s.", strings.Join(improving, ", "))
	}
	if len(declining) > 0 {
		fmt.Fprintf(&b, " Declining: %s.", strings.Join(declining, ", "))
	}
	if n := len(r.Discrepancies); n > 0 {
		fmt.Fprintf(&b, " %d attribute(s) vary widely between stages.", n)
	}
	if !r.IsComplete {
		b.WriteString(" Report is partial until every stage is completed.")
	}
	return b.String()
}
