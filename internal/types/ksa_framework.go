// Package types provides type definitions for structured data used throughout the KSA evaluator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// KSAFramework is an evaluation rubric for one role
type KSAFramework struct {
	JobTitle      string                 `json:"job_title"`
	KSAFramework  KSAJobFit              `json:"ksa_framework"`
	CompanyValues CompanyValuesFramework `json:"company_values"`
}

// KSAJobFit holds the three job-fit categories
type KSAJobFit struct {
	Knowledge JobFitCategory `json:"knowledge"`
	Skills    JobFitCategory `json:"skills"`
	Ability   JobFitCategory `json:"ability"`
}

// JobFitCategory describes one KSA category of the rubric
type JobFitCategory struct {
	Definition      string            `json:"definition"`
	Questions       []string          `json:"questions,omitempty"`
	EvaluationScale map[string]string `json:"evaluation_scale,omitempty"`
	Weighting       float64           `json:"weighting" validate:"min=0,max=100"`
	RedFlags        []string          `json:"red_flags,omitempty"`
}

// CompanyValueCategory holds the fit questions for one company value
type CompanyValueCategory struct {
	Description string   `json:"description,omitempty"`
	Questions   []string `json:"questions,omitempty"`
}

// CompanyValuesFramework maps value name to its question category
type CompanyValuesFramework struct {
	Values map[string]CompanyValueCategory `json:"values" validate:"min=2,max=6"`
}

// Names returns the declared value names in sorted order.
func (c CompanyValuesFramework) Names() []string {
	names := make([]string, 0, len(c.Values))
	for name := range c.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
