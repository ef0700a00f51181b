package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// ReportToExcel writes a multi-stage report workbook and returns the path written.
func ReportToExcel(r *types.MultiStageEvaluationReport, outputPath string) (string, error) {
	f, err := reportWorkbook(r)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return save(f, outputPath)
}

// WriteReportExcel streams a multi-stage report workbook to w.
func WriteReportExcel(r *types.MultiStageEvaluationReport, w io.Writer) error {
	f, err := reportWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f, w)
}

func reportWorkbook(r *types.MultiStageEvaluationReport) (*excelize.File, error) {
	f, st, err := newWorkbook(SheetSummary, SheetProgression, SheetStages)
	if err != nil {
		return nil, fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := reportSummary(f, st, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := reportProgression(f, st, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create progression sheet: %w", err)
	}
	if err := reportStages(f, st, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stages sheet: %w", err)
	}
	return f, nil
}

func reportSummary(f *excelize.File, st *styles, r *types.MultiStageEvaluationReport) error {
	s := newSheet(f, SheetSummary, st, 28, 70)

	s.title("Multi-Stage Evaluation Report")
	s.skip()
	s.field("Candidate:", r.CandidateID)
	s.field("Job Category:", r.JobCategory)
	s.field("Generated:", r.GeneratedAt.Format(timestampLayout))
	s.field("Completed Stages:", fmt.Sprintf("%d of %d", r.CompletedStages, len(stages.StageOrder)))
	s.field("Final Score:", r.FinalScore)
	s.field("Recommendation:", string(r.FinalRecommendation))
	s.field("Summary:", r.Summary)
	s.skip()

	s.list("Key Strengths:", r.KeyStrengths)
	s.list("Key Concerns:", r.KeyConcerns)
	s.list("Discrepancies:", r.Discrepancies)
	return s.err
}

func reportProgression(f *excelize.File, st *styles, r *types.MultiStageEvaluationReport) error {
	s := newSheet(f, SheetProgression, st, 20, 14, 14, 14, 14, 14)
	s.headers("Measure", "Stage 1", "Stage 2", "Stage 3", "Trend", "Consensus")

	for _, name := range types.KSANames {
		p := r.KSAProgression[name]
		s.values(st.wrap, progressionRow(name, p, "")...)
	}
	for _, name := range types.AttributeNames {
		p := r.AttributeProgression[name]
		consensus := ""
		if v, ok := r.ConsensusScores[name]; ok {
			consensus = fmt.Sprintf("%.1f", v)
		}
		s.values(trendStyle(st, p.Trend), progressionRow(name, p, consensus)...)
	}
	s.freezeHeader()
	return s.err
}

func progressionRow(name string, p types.Progression, consensus string) []any {
	row := []any{name}
	for _, v := range p.Values() {
		if v == nil {
			row = append(row, "-")
			continue
		}
		row = append(row, *v)
	}
	return append(row, string(p.Trend), consensus)
}

func trendStyle(st *styles, t types.Trend) int {
	switch t {
	case types.TrendImproving:
		return st.bands[bandStrong]
	case types.TrendDeclining:
		return st.bands[bandFair]
	default:
		return st.wrap
	}
}

func reportStages(f *excelize.File, st *styles, r *types.MultiStageEvaluationReport) error {
	s := newSheet(f, SheetStages, st, 20, 18, 10, 18, 40, 40, 40, 50)
	s.headers("Stage", "Evaluator", "Score", "Recommendation", "Strengths", "Weaknesses", "Red Flags", "Notes")

	refs := map[types.StageID]*types.StageKSAScore{
		types.Stage1: r.StageScores.Stage1,
		types.Stage2: r.StageScores.Stage2,
		types.Stage3: r.StageScores.Stage3,
	}
	for _, id := range stages.StageOrder {
		name := string(id)
		if def, ok := stages.DefinitionFor(id); ok {
			name = def.Name
		}
		score := refs[id]
		if score == nil {
			s.values(st.wrap, name, "", "-", "not completed", "", "", "", "")
			continue
		}
		evaluator := score.EvaluatorName
		if evaluator == "" {
			evaluator = score.EvaluatorID
		}
		s.values(st.bands[recommendationBand(score.OverallRecommendation)],
			name,
			evaluator,
			fmt.Sprintf("%.1f", score.OverallScore),
			string(score.OverallRecommendation),
			strings.Join(score.Strengths, "\n"),
			strings.Join(score.Weaknesses, "\n"),
			strings.Join(score.RedFlags, "\n"),
			score.Notes,
		)
	}
	s.freezeHeader()
	return s.err
}

func recommendationBand(rec types.Recommendation) band {
	switch rec {
	case types.RecommendationStrong:
		return bandStrong
	case types.RecommendationRecommend:
		return bandGood
	case types.RecommendationConsider:
		return bandFair
	default:
		return bandPoor
	}
}
