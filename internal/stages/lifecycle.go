package stages

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// TransitionError reports a status change the stage lifecycle does not allow
type TransitionError struct {
	ScoreID string
	From    types.StageStatus
	To      types.StageStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("stage score %s cannot move from %s to %s", e.ScoreID, e.From, e.To)
}

// DraftInput opens a stage score
type DraftInput struct {
	CandidateID     string                `json:"candidate_id" validate:"required"`
	JobCategory     string                `json:"job_category" validate:"required"`
	StageID         types.StageID         `json:"stage_id" validate:"required,oneof=stage-1 stage-2 stage-3"`
	EvaluatorID     string                `json:"evaluator_id,omitempty"`
	EvaluatorName   string                `json:"evaluator_name,omitempty"`
	KSAScores       types.KSAStageScores  `json:"ksa_scores"`
	AttributeScores types.AttributeScores `json:"attribute_scores"`
	Notes           string                `json:"notes,omitempty"`
	Strengths       []string              `json:"strengths,omitempty"`
	Weaknesses      []string              `json:"weaknesses,omitempty"`
	RedFlags        []string              `json:"red_flags,omitempty"`
}

// Patch updates a draft; nil fields are left unchanged
type Patch struct {
	KSAScores       *types.KSAStageScores  `json:"ksa_scores,omitempty"`
	AttributeScores *types.AttributeScores `json:"attribute_scores,omitempty"`
	Notes           *string                `json:"notes,omitempty"`
	Strengths       []string               `json:"strengths,omitempty"`
	Weaknesses      []string               `json:"weaknesses,omitempty"`
	RedFlags        []string               `json:"red_flags,omitempty"`
}

// NewDraft opens a draft stage score with a fresh id.
func NewDraft(in DraftInput, now time.Time) types.StageKSAScore {
	return types.StageKSAScore{
		ID:              uuid.NewString(),
		CandidateID:     in.CandidateID,
		JobCategory:     in.JobCategory,
		StageID:         in.StageID,
		EvaluatorID:     in.EvaluatorID,
		EvaluatorName:   in.EvaluatorName,
		KSAScores:       in.KSAScores,
		AttributeScores: in.AttributeScores,
		Notes:           in.Notes,
		Strengths:       slices.Clone(in.Strengths),
		Weaknesses:      slices.Clone(in.Weaknesses),
		RedFlags:        slices.Clone(in.RedFlags),
		Status:          types.StageStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateDraft applies patch to a draft and returns the updated copy.
func UpdateDraft(score types.StageKSAScore, patch Patch, now time.Time) (types.StageKSAScore, error) {
	if score.Status != types.StageStatusDraft {
		return types.StageKSAScore{}, &TransitionError{ScoreID: score.ID, From: score.Status, To: types.StageStatusDraft}
	}
	next := clone(score)
	if patch.KSAScores != nil {
		next.KSAScores = *patch.KSAScores
	}
	if patch.AttributeScores != nil {
		next.AttributeScores = *patch.AttributeScores
	}
	if patch.Notes != nil {
		next.Notes = *patch.Notes
	}
	if patch.Strengths != nil {
		next.Strengths = slices.Clone(patch.Strengths)
	}
	if patch.Weaknesses != nil {
		next.Weaknesses = slices.Clone(patch.Weaknesses)
	}
	if patch.RedFlags != nil {
		next.RedFlags = slices.Clone(patch.RedFlags)
	}
	next.UpdatedAt = now
	return next, nil
}

// Complete freezes a draft. The overall score is the mean of the five attributes and
// the recommendation follows cfg.Thresholds.
func Complete(score types.StageKSAScore, cfg Config, now time.Time) (types.StageKSAScore, error) {
	if score.Status != types.StageStatusDraft {
		return types.StageKSAScore{}, &TransitionError{ScoreID: score.ID, From: score.Status, To: types.StageStatusCompleted}
	}
	next := clone(score)
	next.OverallScore = score.AttributeScores.Mean()
	next.OverallRecommendation = cfg.Thresholds.Classify(next.OverallScore)
	next.Status = types.StageStatusCompleted
	next.UpdatedAt = now
	completedAt := now
	next.CompletedAt = &completedAt
	return next, nil
}

// Review marks a completed score as reviewed by reviewer.
func Review(score types.StageKSAScore, reviewer string, now time.Time) (types.StageKSAScore, error) {
	if score.Status != types.StageStatusCompleted {
		return types.StageKSAScore{}, &TransitionError{ScoreID: score.ID, From: score.Status, To: types.StageStatusReviewed}
	}
	next := clone(score)
	next.Status = types.StageStatusReviewed
	next.ReviewedBy = reviewer
	next.UpdatedAt = now
	reviewedAt := now
	next.ReviewedAt = &reviewedAt
	return next, nil
}

func clone(s types.StageKSAScore) types.StageKSAScore {
	c := s
	c.Strengths = slices.Clone(s.Strengths)
	c.Weaknesses = slices.Clone(s.Weaknesses)
	c.RedFlags = slices.Clone(s.RedFlags)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	if s.ReviewedAt != nil {
		t := *s.ReviewedAt
		c.ReviewedAt = &t
	}
	return c
}
