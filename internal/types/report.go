// Package types provides type definitions for structured data used throughout the KSA evaluator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Trend is the coarse direction of a score across stages
type Trend string

// Trend values
const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Progression is a score across the three stages; nil means not scored at that stage
type Progression struct {
	Stage1 *float64 `json:"stage1"`
	Stage2 *float64 `json:"stage2"`
	Stage3 *float64 `json:"stage3"`
	Trend  Trend    `json:"trend"`
}

// Values returns the stage values in stage order.
func (p Progression) Values() []*float64 {
	return []*float64{p.Stage1, p.Stage2, p.Stage3}
}

// StageScoreRefs references the selected stage score per stage
type StageScoreRefs struct {
	Stage1 *StageKSAScore `json:"stage1"`
	Stage2 *StageKSAScore `json:"stage2"`
	Stage3 *StageKSAScore `json:"stage3"`
}

// MultiStageEvaluationReport is the rollup for one candidate across the pipeline
type MultiStageEvaluationReport struct {
	ID                   string                 `json:"id"`
	CandidateID          string                 `json:"candidate_id"`
	JobCategory          string                 `json:"job_category"`
	StageScores          StageScoreRefs         `json:"stage_scores"`
	KSAProgression       map[string]Progression `json:"ksa_progression"`
	AttributeProgression map[string]Progression `json:"attribute_progression"`
	KeyStrengths         []string               `json:"key_strengths"`
	KeyConcerns          []string               `json:"key_concerns"`
	ConsensusScores      map[string]float64     `json:"consensus_scores"`
	Discrepancies        []string               `json:"discrepancies"`
	StageNotes           map[StageID]string     `json:"stage_notes,omitempty"`
	FinalScore           float64                `json:"final_score"`
	FinalRecommendation  Recommendation         `json:"final_recommendation"`
	Summary              string                 `json:"summary"`
	CompletedStages      int                    `json:"completed_stages"`
	IsComplete           bool                   `json:"is_complete"`
	GeneratedAt          time.Time              `json:"generated_at"`
}
