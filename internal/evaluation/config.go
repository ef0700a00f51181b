// Package evaluation converts a candidate profile into KSA category scores and a compatibility verdict.
package evaluation

import (
	"fmt"

	"github.com/jonathan/ksa-evaluator/internal/types"
	"github.com/jonathan/ksa-evaluator/internal/weights"
)

// KnowledgeWeights combines the knowledge sub-scores
type KnowledgeWeights struct {
	SDLC          float64 `json:"sdlc"`
	Documentation float64 `json:"documentation"`
	Industry      float64 `json:"industry"`
	Methodology   float64 `json:"methodology"`
	SystemDesign  float64 `json:"system_design"`
}

// Map returns the weights keyed by breakdown name.
func (w KnowledgeWeights) Map() map[string]float64 {
	return map[string]float64{
		keySDLC:          w.SDLC,
		keyDocumentation: w.Documentation,
		keyIndustry:      w.Industry,
		keyMethodology:   w.Methodology,
		keySystemDesign:  w.SystemDesign,
	}
}

// SkillsWeights combines the skills sub-scores
type SkillsWeights struct {
	Programming    float64 `json:"programming"`
	Frameworks     float64 `json:"frameworks"`
	ProblemSolving float64 `json:"problem_solving"`
	CodeQuality    float64 `json:"code_quality"`
	Collaboration  float64 `json:"collaboration"`
}

// Map returns the weights keyed by breakdown name.
func (w SkillsWeights) Map() map[string]float64 {
	return map[string]float64{
		keyProgramming:    w.Programming,
		keyFrameworks:     w.Frameworks,
		keyProblemSolving: w.ProblemSolving,
		keyCodeQuality:    w.CodeQuality,
		keyCollaboration:  w.Collaboration,
	}
}

// AbilityWeights combines the ability sub-scores
type AbilityWeights struct {
	LearningAgility  float64 `json:"learning_agility"`
	Adaptability     float64 `json:"adaptability"`
	Leadership       float64 `json:"leadership"`
	Communication    float64 `json:"communication"`
	CriticalThinking float64 `json:"critical_thinking"`
}

// Map returns the weights keyed by breakdown name.
func (w AbilityWeights) Map() map[string]float64 {
	return map[string]float64{
		keyLearningAgility:  w.LearningAgility,
		keyAdaptability:     w.Adaptability,
		keyLeadership:       w.Leadership,
		keyCommunication:    w.Communication,
		keyCriticalThinking: w.CriticalThinking,
	}
}

// CompatibilityWeights combines category scores into the overall compatibility score
type CompatibilityWeights struct {
	Knowledge float64 `json:"knowledge"`
	Skills    float64 `json:"skills"`
	Ability   float64 `json:"ability"`
	Values    float64 `json:"values"`
}

// Map returns the weights keyed by category.
func (w CompatibilityWeights) Map() map[string]float64 {
	return map[string]float64{
		"knowledge": w.Knowledge,
		"skills":    w.Skills,
		"ability":   w.Ability,
		"values":    w.Values,
	}
}

// ProficiencyValues maps each proficiency tier onto the 0-10 scale
type ProficiencyValues struct {
	Beginner     float64 `json:"beginner"`
	Intermediate float64 `json:"intermediate"`
	Advanced     float64 `json:"advanced"`
	Expert       float64 `json:"expert"`
}

// Value returns the score for a tier; unknown tiers score as beginner.
func (p ProficiencyValues) Value(level types.ProficiencyLevel) float64 {
	switch level {
	case types.ProficiencyExpert:
		return p.Expert
	case types.ProficiencyAdvanced:
		return p.Advanced
	case types.ProficiencyIntermediate:
		return p.Intermediate
	default:
		return p.Beginner
	}
}

// ValueTraitRule maps company value names containing any keyword onto a personality trait.
// BehaviorField/BehaviorValue name the work-behaviour tag that earns the bonus.
type ValueTraitRule struct {
	Keywords      []string `json:"keywords"`
	Trait         string   `json:"trait"`
	BehaviorField string   `json:"behavior_field,omitempty"`
	BehaviorValue string   `json:"behavior_value,omitempty"`
}

// Config holds every tunable of the category evaluators
type Config struct {
	Knowledge     KnowledgeWeights     `json:"knowledge"`
	Skills        SkillsWeights        `json:"skills"`
	Ability       AbilityWeights       `json:"ability"`
	Compatibility CompatibilityWeights `json:"compatibility"`
	Proficiency   ProficiencyValues    `json:"proficiency"`

	ValueRules         []ValueTraitRule `json:"value_rules"`
	FallbackTrait      string           `json:"fallback_trait"`
	BehaviorBonus      float64          `json:"behavior_bonus"`
	MappedConfidence   float64          `json:"mapped_confidence"`
	UnmappedConfidence float64          `json:"unmapped_confidence"`

	Thresholds    types.RecommendationThresholds `json:"thresholds"`
	StrengthCut   float64                        `json:"strength_cut"`
	ConcernCut    float64                        `json:"concern_cut"`
	MaxHighlights int                            `json:"max_highlights"`

	ConfidenceFloor       float64 `json:"confidence_floor"`
	ExperienceTargetYears float64 `json:"experience_target_years"`
	EducationBonus        float64 `json:"education_bonus"`

	// Variance bounds the jitter applied by EvaluateWithVariance
	Variance float64 `json:"variance"`
}

// EvaluationThresholds is the recommendation table for CandidateEvaluation records.
var EvaluationThresholds = types.RecommendationThresholds{
	StrongRecommend: 8.0,
	Recommend:       7.0,
	Consider:        6.0,
}

// Trait names
const (
	TraitOpenness           = "openness"
	TraitConscientiousness  = "conscientiousness"
	TraitExtraversion       = "extraversion"
	TraitAgreeableness      = "agreeableness"
	TraitEmotionalStability = "emotional_stability"
)

// Behaviour field names usable in ValueTraitRule.BehaviorField
const (
	BehaviorTeamPlayer     = "team_player_type"
	BehaviorCommunication  = "communication_style"
	BehaviorDecisionMaking = "decision_making_style"
	BehaviorWorkStyle      = "work_style"
)

// DefaultValueRules is the ordered value-name lookup table; the first matching rule wins.
func DefaultValueRules() []ValueTraitRule {
	return []ValueTraitRule{
		{Keywords: []string{"innovat", "creativ", "curios"}, Trait: TraitOpenness, BehaviorField: BehaviorDecisionMaking, BehaviorValue: "innovative"},
		{Keywords: []string{"collaborat", "teamwork", "team"}, Trait: TraitAgreeableness, BehaviorField: BehaviorTeamPlayer, BehaviorValue: "collaborator"},
		{Keywords: []string{"integrity", "honest", "trust", "transparen"}, Trait: TraitConscientiousness, BehaviorField: BehaviorWorkStyle, BehaviorValue: "methodical"},
		{Keywords: []string{"excellence", "quality", "craft"}, Trait: TraitConscientiousness, BehaviorField: BehaviorWorkStyle, BehaviorValue: "structured"},
		{Keywords: []string{"ownership", "accountab", "leader"}, Trait: TraitConscientiousness, BehaviorField: BehaviorTeamPlayer, BehaviorValue: "leader"},
		{Keywords: []string{"customer", "client", "empathy"}, Trait: TraitAgreeableness, BehaviorField: BehaviorCommunication, BehaviorValue: "diplomatic"},
		{Keywords: []string{"communicat", "candor", "feedback"}, Trait: TraitExtraversion, BehaviorField: BehaviorCommunication, BehaviorValue: "direct"},
		{Keywords: []string{"agil", "adapt", "change"}, Trait: TraitOpenness, BehaviorField: BehaviorWorkStyle, BehaviorValue: "flexible"},
		{Keywords: []string{"speed", "velocity", "action", "fast"}, Trait: TraitExtraversion, BehaviorField: BehaviorWorkStyle, BehaviorValue: "fast-paced"},
		{Keywords: []string{"resilien", "grit", "persever"}, Trait: TraitEmotionalStability, BehaviorField: BehaviorDecisionMaking, BehaviorValue: "decisive"},
		{Keywords: []string{"diversity", "inclusi", "respect"}, Trait: TraitAgreeableness, BehaviorField: BehaviorTeamPlayer, BehaviorValue: "supporter"},
		{Keywords: []string{"data", "analytic", "rigor"}, Trait: TraitConscientiousness, BehaviorField: BehaviorDecisionMaking, BehaviorValue: "analytical"},
	}
}

// DefaultConfig returns the standard evaluator configuration.
func DefaultConfig() Config {
	return Config{
		Knowledge: KnowledgeWeights{
			SDLC: 0.25, Documentation: 0.20, Industry: 0.20, Methodology: 0.20, SystemDesign: 0.15,
		},
		Skills: SkillsWeights{
			Programming: 0.25, Frameworks: 0.20, ProblemSolving: 0.20, CodeQuality: 0.20, Collaboration: 0.15,
		},
		Ability: AbilityWeights{
			LearningAgility: 0.20, Adaptability: 0.25, Leadership: 0.20, Communication: 0.20, CriticalThinking: 0.15,
		},
		Compatibility: CompatibilityWeights{
			Knowledge: 0.30, Skills: 0.35, Ability: 0.25, Values: 0.10,
		},
		Proficiency: ProficiencyValues{
			Beginner: 3.0, Intermediate: 5.5, Advanced: 7.5, Expert: 9.5,
		},
		ValueRules:            DefaultValueRules(),
		FallbackTrait:         TraitOpenness,
		BehaviorBonus:         1.5,
		MappedConfidence:      0.8,
		UnmappedConfidence:    0.3,
		Thresholds:            EvaluationThresholds,
		StrengthCut:           8.0,
		ConcernCut:            5.0,
		MaxHighlights:         5,
		ConfidenceFloor:       0.5,
		ExperienceTargetYears: 10,
		EducationBonus:        0.15,
		Variance:              0.5,
	}
}

// Validate checks that every weight vector sums to 1.0 and the thresholds are ordered.
func (c Config) Validate() error {
	vectors := []struct {
		name   string
		values map[string]float64
	}{
		{"knowledge", c.Knowledge.Map()},
		{"skills", c.Skills.Map()},
		{"ability", c.Ability.Map()},
		{"compatibility", c.Compatibility.Map()},
	}
	for _, v := range vectors {
		if err := weights.CheckFractions(v.name, v.values); err != nil {
			return err
		}
	}

	t := c.Thresholds
	if !(t.StrongRecommend >= t.Recommend && t.Recommend >= t.Consider) {
		return fmt.Errorf("recommendation thresholds must be descending: %.1f/%.1f/%.1f",
			t.StrongRecommend, t.Recommend, t.Consider)
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor+c.EducationBonus > 1 {
		return fmt.Errorf("confidence floor %.2f plus education bonus %.2f must lie within [0,1]",
			c.ConfidenceFloor, c.EducationBonus)
	}
	if c.MaxHighlights < 0 {
		return fmt.Errorf("max_highlights must be non-negative")
	}
	return nil
}
