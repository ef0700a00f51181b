package evaluation

import (
	"strings"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// EvaluateCompanyValues scores fit against each declared company value, in value-name order.
// Names that match no rule fall back to cfg.FallbackTrait and are marked unmapped.
func EvaluateCompanyValues(profile *types.CandidateProfile, values types.CompanyValuesFramework, cfg Config) []types.ValueFitScore {
	return valueScores(profile, values, cfg, identity)
}

func valueScores(profile *types.CandidateProfile, values types.CompanyValuesFramework, cfg Config, adjust adjuster) []types.ValueFitScore {
	names := values.Names()
	results := make([]types.ValueFitScore, 0, len(names))
	for _, name := range names {
		results = append(results, scoreValue(profile, name, cfg, adjust))
	}
	return results
}

func scoreValue(profile *types.CandidateProfile, name string, cfg Config, adjust adjuster) types.ValueFitScore {
	rule, ok := matchValueRule(name, cfg.ValueRules)

	result := types.ValueFitScore{Value: name, Mapped: ok}
	if !ok {
		result.Trait = cfg.FallbackTrait
		result.Confidence = cfg.UnmappedConfidence
		result.Score = finalize(adjust(traitValue(profile.Personality, cfg.FallbackTrait) / 10))
		return result
	}

	score := traitValue(profile.Personality, rule.Trait) / 10
	if rule.BehaviorField != "" && behaviorTag(profile.WorkBehavior, rule.BehaviorField) == rule.BehaviorValue {
		result.BehaviorMatch = true
		score += cfg.BehaviorBonus
	}

	result.Trait = rule.Trait
	result.Confidence = cfg.MappedConfidence
	result.Score = finalize(adjust(score))
	return result
}

// matchValueRule returns the first rule with a keyword contained in the lower-cased value name.
func matchValueRule(name string, rules []ValueTraitRule) (ValueTraitRule, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return ValueTraitRule{}, false
	}
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return rule, true
			}
		}
	}
	return ValueTraitRule{}, false
}

func behaviorTag(b types.WorkBehavior, field string) string {
	switch field {
	case BehaviorTeamPlayer:
		return b.TeamPlayerType
	case BehaviorCommunication:
		return b.CommunicationStyle
	case BehaviorDecisionMaking:
		return b.DecisionMakingStyle
	case BehaviorWorkStyle:
		return b.WorkStyle
	}
	return ""
}
