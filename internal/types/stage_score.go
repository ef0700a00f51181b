// Package types provides type definitions for structured data used throughout the KSA evaluator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// StageID identifies a pipeline stage
type StageID string

// Pipeline stages in order
const (
	Stage1 StageID = "stage-1"
	Stage2 StageID = "stage-2"
	Stage3 StageID = "stage-3"
)

// StageStatus is the lifecycle state of a stage score
type StageStatus string

// Stage score statuses
const (
	StageStatusDraft     StageStatus = "draft"
	StageStatusCompleted StageStatus = "completed"
	StageStatusReviewed  StageStatus = "reviewed"
)

// IsFinal reports whether the score has been completed (and possibly reviewed).
func (s StageStatus) IsFinal() bool {
	return s == StageStatusCompleted || s == StageStatusReviewed
}

// Attribute names
const (
	AttributeTechnicalSkills = "technicalSkills"
	AttributeCommunication   = "communication"
	AttributeProblemSolving  = "problemSolving"
	AttributeLeadership      = "leadership"
	AttributeAdaptability    = "adaptability"
)

// AttributeNames lists the five fixed attributes in reporting order.
var AttributeNames = []string{
	AttributeTechnicalSkills,
	AttributeCommunication,
	AttributeProblemSolving,
	AttributeLeadership,
	AttributeAdaptability,
}

// AttributeScores holds the five fixed attribute scores (0-10)
type AttributeScores struct {
	TechnicalSkills float64 `json:"technical_skills" validate:"min=0,max=10"`
	Communication   float64 `json:"communication" validate:"min=0,max=10"`
	ProblemSolving  float64 `json:"problem_solving" validate:"min=0,max=10"`
	Leadership      float64 `json:"leadership" validate:"min=0,max=10"`
	Adaptability    float64 `json:"adaptability" validate:"min=0,max=10"`
}

// Get returns the score for an attribute name from AttributeNames.
func (a AttributeScores) Get(name string) float64 {
	switch name {
	case AttributeTechnicalSkills:
		return a.TechnicalSkills
	case AttributeCommunication:
		return a.Communication
	case AttributeProblemSolving:
		return a.ProblemSolving
	case AttributeLeadership:
		return a.Leadership
	case AttributeAdaptability:
		return a.Adaptability
	}
	return 0
}

// Mean is the arithmetic mean of the five attributes.
func (a AttributeScores) Mean() float64 {
	return (a.TechnicalSkills + a.Communication + a.ProblemSolving + a.Leadership + a.Adaptability) / 5
}

// KSA category names used in progressions
const (
	KSAKnowledge = "knowledge"
	KSASkills    = "skills"
	KSAAbility   = "ability"
)

// KSANames lists the KSA categories in reporting order.
var KSANames = []string{KSAKnowledge, KSASkills, KSAAbility}

// KSAStageScores holds per-category scores given at a stage (0-10)
type KSAStageScores struct {
	Knowledge float64 `json:"knowledge" validate:"min=0,max=10"`
	Skills    float64 `json:"skills" validate:"min=0,max=10"`
	Ability   float64 `json:"ability" validate:"min=0,max=10"`
}

// Get returns the score for a name from KSANames.
func (k KSAStageScores) Get(name string) float64 {
	switch name {
	case KSAKnowledge:
		return k.Knowledge
	case KSASkills:
		return k.Skills
	case KSAAbility:
		return k.Ability
	}
	return 0
}

// StageKSAScore is one evaluator's assessment of one candidate at one stage
type StageKSAScore struct {
	ID                    string          `json:"id"`
	CandidateID           string          `json:"candidate_id" validate:"required"`
	JobCategory           string          `json:"job_category" validate:"required"`
	StageID               StageID         `json:"stage_id" validate:"required,oneof=stage-1 stage-2 stage-3"`
	EvaluatorID           string          `json:"evaluator_id,omitempty"`
	EvaluatorName         string          `json:"evaluator_name,omitempty"`
	KSAScores             KSAStageScores  `json:"ksa_scores"`
	AttributeScores       AttributeScores `json:"attribute_scores"`
	Notes                 string          `json:"notes,omitempty"`
	Strengths             []string        `json:"strengths,omitempty"`
	Weaknesses            []string        `json:"weaknesses,omitempty"`
	RedFlags              []string        `json:"red_flags,omitempty"`
	OverallScore          float64         `json:"overall_score"`
	OverallRecommendation Recommendation  `json:"overall_recommendation,omitempty"`
	Status                StageStatus     `json:"status"`
	ReviewedBy            string          `json:"reviewed_by,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	CompletedAt           *time.Time      `json:"completed_at,omitempty"`
	ReviewedAt            *time.Time      `json:"reviewed_at,omitempty"`
}
