// Package types provides type definitions for structured data used throughout the KSA evaluator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Recommendation is the hiring recommendation derived from a composite score
type Recommendation string

// Recommendation tiers, best first
const (
	RecommendationStrong    Recommendation = "strong-recommend"
	RecommendationRecommend Recommendation = "recommend"
	RecommendationConsider  Recommendation = "consider"
	RecommendationReject    Recommendation = "reject"
)

// RecommendationThresholds are the lower bounds of each non-reject tier
type RecommendationThresholds struct {
	StrongRecommend float64 `json:"strong_recommend"`
	Recommend       float64 `json:"recommend"`
	Consider        float64 `json:"consider"`
}

// Classify maps a 0-10 composite score onto a recommendation tier.
func (t RecommendationThresholds) Classify(score float64) Recommendation {
	switch {
	case score >= t.StrongRecommend:
		return RecommendationStrong
	case score >= t.Recommend:
		return RecommendationRecommend
	case score >= t.Consider:
		return RecommendationConsider
	default:
		return RecommendationReject
	}
}

// EvaluationContext identifies one evaluation run
type EvaluationContext struct {
	JobTitle       string    `json:"job_title"`
	EvaluationDate time.Time `json:"evaluation_date"`
	Evaluator      string    `json:"evaluator,omitempty"`
}

// CategoryScore is the result for one KSA category
type CategoryScore struct {
	Overall    float64            `json:"overall"`
	Breakdown  map[string]float64 `json:"breakdown"`
	Confidence float64            `json:"confidence"`
}

// ValueFitScore is the fit against one declared company value.
// Mapped is false when the value name matched no trait rule and the
// fallback trait was used.
type ValueFitScore struct {
	Value         string  `json:"value"`
	Trait         string  `json:"trait"`
	Mapped        bool    `json:"mapped"`
	BehaviorMatch bool    `json:"behavior_match"`
	Score         float64 `json:"score"`
	Confidence    float64 `json:"confidence"`
}

// OverallCompatibility is the composite verdict of an evaluation
type OverallCompatibility struct {
	Score          float64        `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
	Strengths      []string       `json:"strengths"`
	Concerns       []string       `json:"concerns"`
	InterviewFocus []string       `json:"interview_focus"`
}

// PredictedPerformance projects on-the-job performance from category scores
type PredictedPerformance struct {
	Behavioral float64 `json:"behavioral"`
	Technical  float64 `json:"technical"`
	Cultural   float64 `json:"cultural"`
	Overall    float64 `json:"overall"`
}

// CandidateEvaluation is the immutable record of evaluating one candidate against one framework
type CandidateEvaluation struct {
	ID                   string               `json:"id"`
	CandidateID          string               `json:"candidate_id"`
	CandidateName        string               `json:"candidate_name"`
	Context              EvaluationContext    `json:"context"`
	Knowledge            CategoryScore        `json:"knowledge"`
	Skills               CategoryScore        `json:"skills"`
	Abilities            CategoryScore        `json:"abilities"`
	CompanyValueFit      []ValueFitScore      `json:"company_value_fit"`
	OverallCompatibility OverallCompatibility `json:"overall_compatibility"`
	PredictedPerformance PredictedPerformance `json:"predicted_performance"`
	CreatedAt            time.Time            `json:"created_at"`
}
