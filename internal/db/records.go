package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// SaveCandidate upserts a candidate profile, assigning an id when empty.
func (db *DB) SaveCandidate(ctx context.Context, c *types.CandidateProfile) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	content, err := marshalContent(c)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidates (id, name, content, created_at)
		 VALUES ($1, $2, $3, COALESCE($4, NOW()))
		 ON CONFLICT (id) DO UPDATE SET name = $2, content = $3, updated_at = NOW()`,
		c.ID, c.Name, content, nullIfZero(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate %s: %w", c.ID, err)
	}
	return nil
}

// GetCandidate retrieves a candidate by id
func (db *DB) GetCandidate(ctx context.Context, id string) (*types.CandidateProfile, error) {
	return getContent[types.CandidateProfile](ctx, db, "candidate",
		`SELECT content FROM candidates WHERE id = $1`, id)
}

// ListCandidates retrieves every candidate, oldest first
func (db *DB) ListCandidates(ctx context.Context) ([]types.CandidateProfile, error) {
	return listContent[types.CandidateProfile](ctx, db, "candidates",
		`SELECT content FROM candidates ORDER BY created_at ASC, id ASC`)
}

// SaveEvaluation upserts a candidate evaluation, assigning an id when empty.
func (db *DB) SaveEvaluation(ctx context.Context, e *types.CandidateEvaluation) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	content, err := marshalContent(e)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO evaluations (id, candidate_id, job_title, score, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		 ON CONFLICT (id) DO UPDATE SET candidate_id = $2, job_title = $3, score = $4, content = $5`,
		e.ID, e.CandidateID, e.Context.JobTitle, e.OverallCompatibility.Score, content, nullIfZero(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation %s: %w", e.ID, err)
	}
	return nil
}

// ListEvaluationsByCandidate retrieves a candidate's evaluations, newest first
func (db *DB) ListEvaluationsByCandidate(ctx context.Context, candidateID string) ([]types.CandidateEvaluation, error) {
	return listContent[types.CandidateEvaluation](ctx, db, "evaluations",
		`SELECT content FROM evaluations WHERE candidate_id = $1 ORDER BY created_at DESC, id ASC`, candidateID)
}

// SaveStageScore upserts a stage score, assigning an id when empty.
func (db *DB) SaveStageScore(ctx context.Context, s *types.StageKSAScore) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	content, err := marshalContent(s)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO stage_scores (id, candidate_id, job_category, stage_id, status, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
		 ON CONFLICT (id) DO UPDATE SET job_category = $3, stage_id = $4, status = $5, content = $6, updated_at = NOW()`,
		s.ID, s.CandidateID, s.JobCategory, string(s.StageID), string(s.Status), content, nullIfZero(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save stage score %s: %w", s.ID, err)
	}
	return nil
}

// GetStageScore retrieves a stage score by id
func (db *DB) GetStageScore(ctx context.Context, id string) (*types.StageKSAScore, error) {
	return getContent[types.StageKSAScore](ctx, db, "stage score",
		`SELECT content FROM stage_scores WHERE id = $1`, id)
}

// ListStageScoresByCandidate retrieves a candidate's stage scores, oldest first
func (db *DB) ListStageScoresByCandidate(ctx context.Context, candidateID string) ([]types.StageKSAScore, error) {
	return listContent[types.StageKSAScore](ctx, db, "stage scores",
		`SELECT content FROM stage_scores WHERE candidate_id = $1 ORDER BY created_at ASC, id ASC`, candidateID)
}

// SaveReport upserts the report for a candidate and job category. When a
// report already exists its id is kept and written back to r.
func (db *DB) SaveReport(ctx context.Context, r *types.MultiStageEvaluationReport) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	var existing string
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM evaluation_reports WHERE candidate_id = $1 AND job_category = $2`,
		r.CandidateID, r.JobCategory,
	).Scan(&existing)
	switch {
	case err == nil:
		r.ID = existing
	case err != pgx.ErrNoRows:
		return fmt.Errorf("failed to look up report for %s/%s: %w", r.CandidateID, r.JobCategory, err)
	}

	content, err := marshalContent(r)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO evaluation_reports (id, candidate_id, job_category, final_score, content, generated_at)
		 VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		 ON CONFLICT (candidate_id, job_category) DO UPDATE
		 SET final_score = $4, content = $5, generated_at = COALESCE($6, NOW())`,
		r.ID, r.CandidateID, r.JobCategory, r.FinalScore, content, nullIfZero(r.GeneratedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save report for %s/%s: %w", r.CandidateID, r.JobCategory, err)
	}
	return nil
}

// GetReport retrieves the report for a candidate and job category
func (db *DB) GetReport(ctx context.Context, candidateID, jobCategory string) (*types.MultiStageEvaluationReport, error) {
	return getContent[types.MultiStageEvaluationReport](ctx, db, "report",
		`SELECT content FROM evaluation_reports WHERE candidate_id = $1 AND job_category = $2`,
		candidateID, jobCategory)
}

// ListReportsByCandidate retrieves every report for a candidate ordered by job category
func (db *DB) ListReportsByCandidate(ctx context.Context, candidateID string) ([]types.MultiStageEvaluationReport, error) {
	return listContent[types.MultiStageEvaluationReport](ctx, db, "reports",
		`SELECT content FROM evaluation_reports WHERE candidate_id = $1 ORDER BY job_category ASC`, candidateID)
}

// nullIfZero returns nil for the zero time so the column default applies
func nullIfZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
