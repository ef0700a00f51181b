package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/ksa-evaluator/internal/report"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// StartStage opens a draft stage score for an existing candidate.
func (s *Service) StartStage(ctx context.Context, in stages.DraftInput) (*types.StageKSAScore, error) {
	if err := types.ValidateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.GetCandidate(ctx, in.CandidateID); err != nil {
		return nil, err
	}

	score := stages.NewDraft(in, s.now())
	if err := types.ValidateStruct(score); err != nil {
		return nil, err
	}
	if err := s.repo.SaveStageScore(ctx, &score); err != nil {
		return nil, fmt.Errorf("failed to save stage score: %w", err)
	}

	s.logger.InfoContext(ctx, "stage started",
		slog.String("stage_score_id", score.ID),
		slog.String("candidate_id", score.CandidateID),
		slog.String("stage", string(score.StageID)),
	)
	return &score, nil
}

// GetStageScore returns a stage score or a *NotFoundError.
func (s *Service) GetStageScore(ctx context.Context, id string) (*types.StageKSAScore, error) {
	score, err := s.repo.GetStageScore(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage score %s: %w", id, err)
	}
	if score == nil {
		return nil, &NotFoundError{Kind: "stage score", ID: id}
	}
	return score, nil
}

// ListStageScores returns a candidate's stage scores.
func (s *Service) ListStageScores(ctx context.Context, candidateID string) ([]types.StageKSAScore, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	return s.repo.ListStageScoresByCandidate(ctx, candidateID)
}

// UpdateStage applies patch to a draft stage score.
func (s *Service) UpdateStage(ctx context.Context, id string, patch stages.Patch) (*types.StageKSAScore, error) {
	current, err := s.GetStageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := stages.UpdateDraft(*current, patch, s.now())
	if err != nil {
		return nil, err
	}
	if err := types.ValidateStruct(next); err != nil {
		return nil, err
	}
	if err := s.repo.SaveStageScore(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save stage score: %w", err)
	}
	return &next, nil
}

// StageCompletion is the outcome of completing a stage. Report is set when the
// completion left every stage of the job category final.
type StageCompletion struct {
	Score  *types.StageKSAScore              `json:"score"`
	Report *types.MultiStageEvaluationReport `json:"report,omitempty"`
}

// CompleteStage freezes a draft. Once the candidate has a final score for every
// stage of the job category the report is generated and stored. A report that
// cannot be stored leaves Report nil without failing the completion.
func (s *Service) CompleteStage(ctx context.Context, id string) (*StageCompletion, error) {
	current, err := s.GetStageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := stages.Complete(*current, s.opts.Stages, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveStageScore(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save stage score: %w", err)
	}
	s.logger.InfoContext(ctx, "stage completed",
		slog.String("stage_score_id", next.ID),
		slog.String("stage", string(next.StageID)),
		slog.Float64("score", next.OverallScore),
	)

	out := &StageCompletion{Score: &next}

	// The stage is already frozen, so report failures are logged rather than
	// returned. RegenerateReport rebuilds the report later.
	r, err := s.reportIfComplete(ctx, next.CandidateID, next.JobCategory)
	if err != nil {
		s.logger.ErrorContext(ctx, "report generation failed after stage completion",
			slog.String("candidate_id", next.CandidateID),
			slog.String("job_category", next.JobCategory),
			slog.Any("error", err),
		)
		return out, nil
	}
	out.Report = r
	return out, nil
}

// reportIfComplete stores the report once every stage of the category is final;
// it returns nil otherwise.
func (s *Service) reportIfComplete(ctx context.Context, candidateID, jobCategory string) (*types.MultiStageEvaluationReport, error) {
	scores, err := s.categoryScores(ctx, candidateID, jobCategory)
	if err != nil {
		return nil, err
	}
	if stages.CompletedStageCount(scores) < len(stages.StageOrder) {
		return nil, nil
	}
	return s.saveReport(ctx, candidateID, jobCategory, scores)
}

// ReviewStage marks a completed stage score as reviewed.
func (s *Service) ReviewStage(ctx context.Context, id, reviewer string) (*types.StageKSAScore, error) {
	current, err := s.GetStageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := stages.Review(*current, reviewer, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveStageScore(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save stage score: %w", err)
	}
	return &next, nil
}

// RegenerateReport rebuilds and stores the report from the current stage scores,
// whether or not every stage is complete.
func (s *Service) RegenerateReport(ctx context.Context, candidateID, jobCategory string) (*types.MultiStageEvaluationReport, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	scores, err := s.categoryScores(ctx, candidateID, jobCategory)
	if err != nil {
		return nil, err
	}
	return s.saveReport(ctx, candidateID, jobCategory, scores)
}

// GetReport returns the stored report or a *NotFoundError.
func (s *Service) GetReport(ctx context.Context, candidateID, jobCategory string) (*types.MultiStageEvaluationReport, error) {
	r, err := s.repo.GetReport(ctx, candidateID, jobCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if r == nil {
		return nil, &NotFoundError{Kind: "report", ID: candidateID + "/" + jobCategory}
	}
	return r, nil
}

// ListReports returns every stored report for a candidate.
func (s *Service) ListReports(ctx context.Context, candidateID string) ([]types.MultiStageEvaluationReport, error) {
	return s.repo.ListReportsByCandidate(ctx, candidateID)
}

func (s *Service) categoryScores(ctx context.Context, candidateID, jobCategory string) ([]types.StageKSAScore, error) {
	all, err := s.repo.ListStageScoresByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage scores: %w", err)
	}
	out := make([]types.StageKSAScore, 0, len(all))
	for _, sc := range all {
		if sc.JobCategory == jobCategory {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *Service) saveReport(ctx context.Context, candidateID, jobCategory string, scores []types.StageKSAScore) (*types.MultiStageEvaluationReport, error) {
	r := report.Build(candidateID, jobCategory, scores, s.opts.Stages, s.now())
	if err := s.repo.SaveReport(ctx, &r); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	s.logger.InfoContext(ctx, "report generated",
		slog.String("report_id", r.ID),
		slog.String("candidate_id", candidateID),
		slog.String("job_category", jobCategory),
		slog.Int("completed_stages", r.CompletedStages),
		slog.Float64("final_score", r.FinalScore),
	)
	return &r, nil
}
