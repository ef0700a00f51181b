// Package types provides type definitions for structured data used throughout the KSA evaluator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Comparison dimension names
const (
	DimensionTechnicalSkills = "technicalSkills"
	DimensionExperience      = "experience"
	DimensionCulturalFit     = "culturalFit"
	DimensionPersonality     = "personality"
	DimensionGrowthPotential = "growthPotential"
)

// DimensionNames lists the comparison dimensions in reporting order.
var DimensionNames = []string{
	DimensionTechnicalSkills,
	DimensionExperience,
	DimensionCulturalFit,
	DimensionPersonality,
	DimensionGrowthPotential,
}

// ComparisonCriteria is the weight vector over the five dimensions; intended to sum to 1.0
type ComparisonCriteria struct {
	TechnicalSkills float64 `json:"technical_skills" validate:"min=0,max=1"`
	Experience      float64 `json:"experience" validate:"min=0,max=1"`
	CulturalFit     float64 `json:"cultural_fit" validate:"min=0,max=1"`
	Personality     float64 `json:"personality" validate:"min=0,max=1"`
	GrowthPotential float64 `json:"growth_potential" validate:"min=0,max=1"`
}

// Map returns the weights keyed by dimension name.
func (c ComparisonCriteria) Map() map[string]float64 {
	return map[string]float64{
		DimensionTechnicalSkills: c.TechnicalSkills,
		DimensionExperience:      c.Experience,
		DimensionCulturalFit:     c.CulturalFit,
		DimensionPersonality:     c.Personality,
		DimensionGrowthPotential: c.GrowthPotential,
	}
}

// CriteriaOverrides replaces individual default weights; nil fields keep the default
type CriteriaOverrides struct {
	TechnicalSkills *float64 `json:"technical_skills,omitempty"`
	Experience      *float64 `json:"experience,omitempty"`
	CulturalFit     *float64 `json:"cultural_fit,omitempty"`
	Personality     *float64 `json:"personality,omitempty"`
	GrowthPotential *float64 `json:"growth_potential,omitempty"`
}

// JobContext is the optional role context a comparison is run against
type JobContext struct {
	JobTitle       string   `json:"job_title,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	MinYears       float64  `json:"min_years,omitempty" validate:"min=0"`
}

// DimensionScores holds one candidate's five comparison sub-scores (0-10)
type DimensionScores struct {
	TechnicalSkills float64 `json:"technical_skills"`
	Experience      float64 `json:"experience"`
	CulturalFit     float64 `json:"cultural_fit"`
	Personality     float64 `json:"personality"`
	GrowthPotential float64 `json:"growth_potential"`
}

// Get returns the score for a name from DimensionNames.
func (d DimensionScores) Get(name string) float64 {
	switch name {
	case DimensionTechnicalSkills:
		return d.TechnicalSkills
	case DimensionExperience:
		return d.Experience
	case DimensionCulturalFit:
		return d.CulturalFit
	case DimensionPersonality:
		return d.Personality
	case DimensionGrowthPotential:
		return d.GrowthPotential
	}
	return 0
}

// CandidateScore is one ranked entry of a comparison
type CandidateScore struct {
	CandidateID    string          `json:"candidate_id"`
	CandidateName  string          `json:"candidate_name"`
	Rank           int             `json:"rank"`
	OverallScore   float64         `json:"overall_score"`
	Scores         DimensionScores `json:"scores"`
	Strengths      []string        `json:"strengths"`
	Concerns       []string        `json:"concerns"`
	Recommendation string          `json:"recommendation"`
}

// ScoreDistribution summarises the overall scores of a comparison
type ScoreDistribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Differentiator is a dimension separating the top two candidates
type Differentiator struct {
	Dimension     string  `json:"dimension"`
	TopScore      float64 `json:"top_score"`
	RunnerUpScore float64 `json:"runner_up_score"`
	Difference    float64 `json:"difference"`
	Description   string  `json:"description"`
}

// RiskFactor lists the risks flagged for one candidate
type RiskFactor struct {
	CandidateID   string   `json:"candidate_id"`
	CandidateName string   `json:"candidate_name"`
	Factors       []string `json:"factors"`
}

// ComparisonInsights are set-level observations across a comparison
type ComparisonInsights struct {
	Distribution       ScoreDistribution `json:"distribution"`
	KeyDifferentiators []Differentiator  `json:"key_differentiators"`
	Recommendations    []string          `json:"recommendations"`
	RiskFactors        []RiskFactor      `json:"risk_factors"`
}

// CandidateComparison is the ranked result of comparing a candidate set
type CandidateComparison struct {
	Criteria    ComparisonCriteria `json:"criteria"`
	JobContext  *JobContext        `json:"job_context,omitempty"`
	Candidates  []CandidateScore   `json:"candidates"`
	Insights    ComparisonInsights `json:"insights"`
	GeneratedAt time.Time          `json:"generated_at"`
}
