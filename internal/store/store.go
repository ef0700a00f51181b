// Package store defines the record repository used by the evaluation service.
package store

import (
	"context"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// Repository persists candidates, evaluations, stage scores and reports.
// Writes replace the full record. Lookups of missing records return (nil, nil).
type Repository interface {
	SaveCandidate(ctx context.Context, c *types.CandidateProfile) error
	GetCandidate(ctx context.Context, id string) (*types.CandidateProfile, error)
	ListCandidates(ctx context.Context) ([]types.CandidateProfile, error)

	SaveEvaluation(ctx context.Context, e *types.CandidateEvaluation) error
	ListEvaluationsByCandidate(ctx context.Context, candidateID string) ([]types.CandidateEvaluation, error)

	SaveStageScore(ctx context.Context, s *types.StageKSAScore) error
	GetStageScore(ctx context.Context, id string) (*types.StageKSAScore, error)
	ListStageScoresByCandidate(ctx context.Context, candidateID string) ([]types.StageKSAScore, error)

	// SaveReport upserts by (candidate_id, job_category); an existing report keeps its id.
	SaveReport(ctx context.Context, r *types.MultiStageEvaluationReport) error
	GetReport(ctx context.Context, candidateID, jobCategory string) (*types.MultiStageEvaluationReport, error)
	ListReportsByCandidate(ctx context.Context, candidateID string) ([]types.MultiStageEvaluationReport, error)

	Close()
}
