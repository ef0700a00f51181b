package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ksa-evaluator/internal/evaluation"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// Progress steps
const (
	StepEvaluated = "evaluated"
	StepFailed    = "failed"
)

// ProgressEvent represents a progress update during batch evaluation
type ProgressEvent struct {
	Step        string `json:"step"`
	CandidateID string `json:"candidate_id"`
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	Message     string `json:"message"`
	Content     any    `json:"content,omitempty"`
}

// ProgressCallback is called when batch progress occurs. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// EvaluateCandidate loads a candidate, evaluates it against framework and stores the result.
// A zero EvaluationDate is replaced with the current time.
func (s *Service) EvaluateCandidate(ctx context.Context, candidateID string, framework *types.KSAFramework, evalCtx types.EvaluationContext) (*types.CandidateEvaluation, error) {
	profile, err := s.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if evalCtx.EvaluationDate.IsZero() {
		evalCtx.EvaluationDate = now
	}
	if evalCtx.JobTitle == "" && framework != nil {
		evalCtx.JobTitle = framework.JobTitle
	}

	ev := evaluation.Evaluate(profile, framework, evalCtx, s.opts.Evaluation)
	ev.ID = uuid.NewString()
	ev.CreatedAt = now

	if err := s.repo.SaveEvaluation(ctx, &ev); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	s.logger.InfoContext(ctx, "candidate evaluated",
		slog.String("candidate_id", candidateID),
		slog.String("evaluation_id", ev.ID),
		slog.Float64("score", ev.OverallCompatibility.Score),
		slog.String("recommendation", string(ev.OverallCompatibility.Recommendation)),
	)
	return &ev, nil
}

// EvaluateBatch evaluates candidates concurrently, at most Options.Concurrency at a time.
// Results are in the order of candidateIDs. The first failure cancels the remaining work.
func (s *Service) EvaluateBatch(ctx context.Context, candidateIDs []string, framework *types.KSAFramework, evalCtx types.EvaluationContext, onProgress ProgressCallback) ([]types.CandidateEvaluation, error) {
	if evalCtx.EvaluationDate.IsZero() {
		evalCtx.EvaluationDate = s.now()
	}

	results := make([]types.CandidateEvaluation, len(candidateIDs))
	total := len(candidateIDs)

	var mu sync.Mutex
	completed := 0
	emit := func(event ProgressEvent) {
		if onProgress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if event.Step == StepEvaluated {
			completed++
		}
		event.Completed = completed
		event.Total = total
		onProgress(event)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, id := range candidateIDs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			ev, err := s.EvaluateCandidate(gCtx, id, framework, evalCtx)
			if err != nil {
				emit(ProgressEvent{Step: StepFailed, CandidateID: id, Message: err.Error()})
				return fmt.Errorf("failed to evaluate candidate %s: %w", id, err)
			}
			results[i] = *ev
			emit(ProgressEvent{
				Step:        StepEvaluated,
				CandidateID: id,
				Message:     fmt.Sprintf("Evaluated %s: %.1f (%s)", ev.CandidateName, ev.OverallCompatibility.Score, ev.OverallCompatibility.Recommendation),
				Content:     ev,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
