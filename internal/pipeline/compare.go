package pipeline

import (
	"context"
	"log/slog"

	"github.com/jonathan/ksa-evaluator/internal/comparison"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// Compare loads candidates and ranks them. Overrides replace individual criteria
// weights; nil keeps the configured criteria.
func (s *Service) Compare(ctx context.Context, candidateIDs []string, job *types.JobContext, overrides *types.CriteriaOverrides) (*types.CandidateComparison, error) {
	engine := s.engine
	if overrides != nil {
		var err error
		engine, err = comparison.NewEngine(comparison.MergeCriteria(s.opts.Criteria, overrides), s.opts.Comparison)
		if err != nil {
			return nil, err
		}
	}

	profiles := make([]*types.CandidateProfile, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		profile, err := s.GetCandidate(ctx, id)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	result := engine.Compare(profiles, job)
	s.logger.InfoContext(ctx, "candidates compared",
		slog.Int("candidates", len(result.Candidates)),
		slog.Float64("mean", result.Insights.Distribution.Mean),
	)
	return &result, nil
}
