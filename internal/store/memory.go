package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

type reportKey struct {
	candidateID string
	jobCategory string
}

// Memory is a map-backed Repository. Records are copied on every read and write.
type Memory struct {
	mu          sync.RWMutex
	candidates  map[string][]byte
	evaluations map[string][]byte
	stageScores map[string][]byte
	reports     map[reportKey][]byte
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		candidates:  make(map[string][]byte),
		evaluations: make(map[string][]byte),
		stageScores: make(map[string][]byte),
		reports:     make(map[reportKey][]byte),
	}
}

// Close is a no-op
func (m *Memory) Close() {}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

func decode[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &v, nil
}

func decodeAll[T any](records map[string][]byte, keep func(*T) bool) ([]T, error) {
	out := make([]T, 0)
	for _, data := range records {
		v, err := decode[T](data)
		if err != nil {
			return nil, err
		}
		if keep(v) {
			out = append(out, *v)
		}
	}
	return out, nil
}

// SaveCandidate stores a candidate, assigning an id when empty.
func (m *Memory) SaveCandidate(_ context.Context, c *types.CandidateProfile) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	data, err := encode(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates[c.ID] = data
	return nil
}

// GetCandidate returns a candidate by id.
func (m *Memory) GetCandidate(_ context.Context, id string) (*types.CandidateProfile, error) {
	m.mu.RLock()
	data, ok := m.candidates[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decode[types.CandidateProfile](data)
}

// ListCandidates returns every candidate ordered by creation time.
func (m *Memory) ListCandidates(_ context.Context) ([]types.CandidateProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, err := decodeAll(m.candidates, func(*types.CandidateProfile) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveEvaluation stores an evaluation, assigning an id when empty.
func (m *Memory) SaveEvaluation(_ context.Context, e *types.CandidateEvaluation) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	data, err := encode(e)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluations[e.ID] = data
	return nil
}

// ListEvaluationsByCandidate returns a candidate's evaluations, newest first.
func (m *Memory) ListEvaluationsByCandidate(_ context.Context, candidateID string) ([]types.CandidateEvaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, err := decodeAll(m.evaluations, func(e *types.CandidateEvaluation) bool { return e.CandidateID == candidateID })
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveStageScore stores a stage score, assigning an id when empty.
func (m *Memory) SaveStageScore(_ context.Context, s *types.StageKSAScore) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageScores[s.ID] = data
	return nil
}

// GetStageScore returns a stage score by id.
func (m *Memory) GetStageScore(_ context.Context, id string) (*types.StageKSAScore, error) {
	m.mu.RLock()
	data, ok := m.stageScores[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decode[types.StageKSAScore](data)
}

// ListStageScoresByCandidate returns a candidate's stage scores ordered by creation time.
func (m *Memory) ListStageScoresByCandidate(_ context.Context, candidateID string) ([]types.StageKSAScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, err := decodeAll(m.stageScores, func(s *types.StageKSAScore) bool { return s.CandidateID == candidateID })
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveReport upserts a report by candidate and job category.
func (m *Memory) SaveReport(_ context.Context, r *types.MultiStageEvaluationReport) error {
	key := reportKey{candidateID: r.CandidateID, jobCategory: r.JobCategory}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.reports[key]; ok {
		prev, err := decode[types.MultiStageEvaluationReport](existing)
		if err != nil {
			return err
		}
		r.ID = prev.ID
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	data, err := encode(r)
	if err != nil {
		return err
	}
	m.reports[key] = data
	return nil
}

// GetReport returns the report for a candidate and job category.
func (m *Memory) GetReport(_ context.Context, candidateID, jobCategory string) (*types.MultiStageEvaluationReport, error) {
	m.mu.RLock()
	data, ok := m.reports[reportKey{candidateID: candidateID, jobCategory: jobCategory}]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decode[types.MultiStageEvaluationReport](data)
}

// ListReportsByCandidate returns every report for a candidate ordered by job category.
func (m *Memory) ListReportsByCandidate(_ context.Context, candidateID string) ([]types.MultiStageEvaluationReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.MultiStageEvaluationReport
	for key, data := range m.reports {
		if key.candidateID != candidateID {
			continue
		}
		r, err := decode[types.MultiStageEvaluationReport](data)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobCategory < out[j].JobCategory })
	if out == nil {
		out = []types.MultiStageEvaluationReport{}
	}
	return out, nil
}
