// Package pipeline orchestrates candidate evaluation, comparison and the multi-stage
// interview workflow on top of a store.Repository.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/comparison"
	"github.com/jonathan/ksa-evaluator/internal/evaluation"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/store"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// DefaultConcurrency bounds EvaluateBatch when Options.Concurrency is unset
const DefaultConcurrency = 4

// NotFoundError reports a missing record
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// Options configures a Service
type Options struct {
	Concurrency int
	Evaluation  evaluation.Config
	Criteria    types.ComparisonCriteria
	Comparison  comparison.Config
	Stages      stages.Config
	Now         func() time.Time
	Logger      *slog.Logger
}

// DefaultOptions returns options with every scoring config at its default.
func DefaultOptions() Options {
	return Options{
		Concurrency: DefaultConcurrency,
		Evaluation:  evaluation.DefaultConfig(),
		Criteria:    comparison.DefaultCriteria(),
		Comparison:  comparison.DefaultConfig(),
		Stages:      stages.DefaultConfig(),
	}
}

// Service is the application layer shared by the CLI and the HTTP server
type Service struct {
	repo   store.Repository
	opts   Options
	engine *comparison.Engine
	logger *slog.Logger
}

// NewService validates opts and builds a Service over repo.
func NewService(repo store.Repository, opts Options) (*Service, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if err := opts.Evaluation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid evaluation config: %w", err)
	}
	if err := opts.Stages.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stage config: %w", err)
	}
	opts.Comparison.Now = opts.Now

	engine, err := comparison.NewEngine(opts.Criteria, opts.Comparison)
	if err != nil {
		return nil, err
	}

	return &Service{
		repo:   repo,
		opts:   opts,
		engine: engine,
		logger: opts.Logger,
	}, nil
}

// Options returns the effective options.
func (s *Service) Options() Options {
	return s.opts
}

func (s *Service) now() time.Time {
	return s.opts.Now().UTC()
}

// CreateCandidate validates and stores a new candidate profile.
func (s *Service) CreateCandidate(ctx context.Context, profile *types.CandidateProfile) error {
	if err := types.ValidateStruct(profile); err != nil {
		return err
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = s.now()
	}
	if err := s.repo.SaveCandidate(ctx, profile); err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	s.logger.InfoContext(ctx, "candidate created", slog.String("candidate_id", profile.ID))
	return nil
}

// GetCandidate returns a candidate or a *NotFoundError.
func (s *Service) GetCandidate(ctx context.Context, id string) (*types.CandidateProfile, error) {
	profile, err := s.repo.GetCandidate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate %s: %w", id, err)
	}
	if profile == nil {
		return nil, &NotFoundError{Kind: "candidate", ID: id}
	}
	return profile, nil
}

// ListCandidates returns every stored candidate.
func (s *Service) ListCandidates(ctx context.Context) ([]types.CandidateProfile, error) {
	return s.repo.ListCandidates(ctx)
}

// ListEvaluations returns a candidate's evaluations, newest first.
func (s *Service) ListEvaluations(ctx context.Context, candidateID string) ([]types.CandidateEvaluation, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	return s.repo.ListEvaluationsByCandidate(ctx, candidateID)
}
