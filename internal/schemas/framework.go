package schemas

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/types"
	"github.com/jonathan/ksa-evaluator/internal/weights"
	bundled "github.com/jonathan/ksa-evaluator/schemas"
)

// Framework weighting rules
const (
	WeightingTotal     = 100.0
	WeightingTolerance = 0.5
)

// ValidateFramework checks a KSA framework document against the bundled schema and
// verifies that the category weightings sum to 100. It returns the decoded framework.
func ValidateFramework(data []byte) (*types.KSAFramework, error) {
	return defaultValidator.Framework(data)
}

// Framework is ValidateFramework against v's schema source.
func (v *Validator) Framework(data []byte) (*types.KSAFramework, error) {
	if err := v.Validate(bundled.KSAFramework, data); err != nil {
		return nil, err
	}

	var fw types.KSAFramework
	if err := json.Unmarshal(data, &fw); err != nil {
		return nil, fmt.Errorf("failed to decode framework: %w", err)
	}
	if err := CheckWeightings(&fw); err != nil {
		return nil, err
	}
	return &fw, nil
}

// CheckWeightings verifies the knowledge, skills and ability weightings sum to 100 (±0.5).
func CheckWeightings(fw *types.KSAFramework) error {
	return weights.CheckSum("ksa weighting", map[string]float64{
		types.KSAKnowledge: fw.KSAFramework.Knowledge.Weighting,
		types.KSASkills:    fw.KSAFramework.Skills.Weighting,
		types.KSAAbility:   fw.KSAFramework.Ability.Weighting,
	}, WeightingTotal, WeightingTolerance)
}

// ValidateCandidate checks a candidate profile document and decodes it.
func ValidateCandidate(data []byte) (*types.CandidateProfile, error) {
	return defaultValidator.Candidate(data)
}

// Candidate is ValidateCandidate against v's schema source.
func (v *Validator) Candidate(data []byte) (*types.CandidateProfile, error) {
	if err := v.Validate(bundled.CandidateProfile, data); err != nil {
		return nil, err
	}
	var profile types.CandidateProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode candidate: %w", err)
	}
	if err := types.ValidateStruct(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ValidateStageDraft checks a stage score draft document and decodes it.
func ValidateStageDraft(data []byte) (*stages.DraftInput, error) {
	return defaultValidator.StageDraft(data)
}

// StageDraft is ValidateStageDraft against v's schema source.
func (v *Validator) StageDraft(data []byte) (*stages.DraftInput, error) {
	if err := v.Validate(bundled.StageScore, data); err != nil {
		return nil, err
	}
	var in stages.DraftInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to decode stage score: %w", err)
	}
	if err := types.ValidateStruct(in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ValidateJobContext checks a job context document and decodes it.
func ValidateJobContext(data []byte) (*types.JobContext, error) {
	return defaultValidator.JobContext(data)
}

// JobContext is ValidateJobContext against v's schema source.
func (v *Validator) JobContext(data []byte) (*types.JobContext, error) {
	if err := v.Validate(bundled.JobContext, data); err != nil {
		return nil, err
	}
	var job types.JobContext
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job context: %w", err)
	}
	return &job, nil
}
