package evaluation

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// Evaluate scores a candidate against a framework and assembles the full evaluation record.
// It is deterministic: the same inputs yield the same result. ID and CreatedAt are left
// for the caller to assign.
func Evaluate(profile *types.CandidateProfile, framework *types.KSAFramework, evalCtx types.EvaluationContext, cfg Config) types.CandidateEvaluation {
	return evaluate(profile, framework, evalCtx, cfg, identity)
}

// EvaluateWithVariance behaves like Evaluate but perturbs every sub-score by a uniform
// offset in [-cfg.Variance, cfg.Variance] drawn from rng. Results stay within [0,10].
func EvaluateWithVariance(profile *types.CandidateProfile, framework *types.KSAFramework, evalCtx types.EvaluationContext, cfg Config, rng *rand.Rand) types.CandidateEvaluation {
	jitter := func(v float64) float64 {
		return v + (rng.Float64()*2-1)*cfg.Variance
	}
	return evaluate(profile, framework, evalCtx, cfg, jitter)
}

func evaluate(profile *types.CandidateProfile, framework *types.KSAFramework, evalCtx types.EvaluationContext, cfg Config, adjust adjuster) types.CandidateEvaluation {
	if framework == nil {
		framework = &types.KSAFramework{}
	}
	asOf := evalCtx.EvaluationDate

	knowledge := knowledgeScore(profile, cfg, asOf, adjust)
	skills := skillsScore(profile, cfg, asOf, adjust)
	abilities := abilityScore(profile, cfg, asOf, adjust)
	values := valueScores(profile, framework.CompanyValues, cfg, adjust)

	valuesAvg, hasValues := averageValueFit(values)
	score := compatibilityScore(knowledge.Overall, skills.Overall, abilities.Overall, valuesAvg, hasValues, cfg.Compatibility)

	categories := []namedCategory{
		{name: types.KSAKnowledge, score: knowledge, fit: framework.KSAFramework.Knowledge},
		{name: types.KSASkills, score: skills, fit: framework.KSAFramework.Skills},
		{name: types.KSAAbility, score: abilities, fit: framework.KSAFramework.Ability},
	}
	strengths := collectStrengths(categories, values, cfg)

	return types.CandidateEvaluation{
		CandidateID:     profile.ID,
		CandidateName:   profile.Name,
		Context:         evalCtx,
		Knowledge:       knowledge,
		Skills:          skills,
		Abilities:       abilities,
		CompanyValueFit: values,
		OverallCompatibility: types.OverallCompatibility{
			Score:          score,
			Recommendation: cfg.Thresholds.Classify(score),
			Strengths:      strengths,
			Concerns:       collectConcerns(categories, values, cfg),
			InterviewFocus: interviewFocus(categories, strengths, cfg),
		},
		PredictedPerformance: predictPerformance(knowledge.Overall, skills.Overall, abilities.Overall, valuesAvg, hasValues),
	}
}

type namedCategory struct {
	name  string
	score types.CategoryScore
	fit   types.JobFitCategory
}

func averageValueFit(values []types.ValueFitScore) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	total := 0.0
	for _, v := range values {
		total += v.Score
	}
	return total / float64(len(values)), true
}

// compatibilityScore folds category scores with the compatibility weights. Without
// declared values the values weight is dropped and the remainder renormalised.
func compatibilityScore(knowledge, skills, ability, values float64, hasValues bool, w CompatibilityWeights) float64 {
	total := w.Knowledge*knowledge + w.Skills*skills + w.Ability*ability
	weightSum := w.Knowledge + w.Skills + w.Ability
	if hasValues {
		total += w.Values * values
		weightSum += w.Values
	}
	if weightSum <= 0 {
		return 0
	}
	return finalize(total / weightSum)
}

func predictPerformance(knowledge, skills, ability, values float64, hasValues bool) types.PredictedPerformance {
	technical := mean(knowledge, skills)
	behavioral := ability
	cultural := ability
	if hasValues {
		behavioral = mean(ability, values)
		cultural = values
	}
	return types.PredictedPerformance{
		Behavioral: finalize(behavioral),
		Technical:  finalize(technical),
		Cultural:   finalize(cultural),
		Overall:    finalize(mean(behavioral, technical, cultural)),
	}
}

type highlight struct {
	label string
	score float64
}

func collectStrengths(categories []namedCategory, values []types.ValueFitScore, cfg Config) []string {
	var items []highlight
	for _, c := range categories {
		for key, score := range c.score.Breakdown {
			if score >= cfg.StrengthCut {
				items = append(items, highlight{label: fmt.Sprintf("Strong %s (%.1f)", breakdownLabels[key], score), score: score})
			}
		}
	}
	for _, v := range values {
		if v.Mapped && v.Score >= cfg.StrengthCut {
			items = append(items, highlight{label: fmt.Sprintf("Strong alignment with %s (%.1f)", v.Value, v.Score), score: v.Score})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].label < items[j].label
	})
	return labels(items, cfg.MaxHighlights)
}

func collectConcerns(categories []namedCategory, values []types.ValueFitScore, cfg Config) []string {
	var items []highlight
	for _, c := range categories {
		for key, score := range c.score.Breakdown {
			if score < cfg.ConcernCut {
				items = append(items, highlight{label: fmt.Sprintf("Low %s (%.1f)", breakdownLabels[key], score), score: score})
			}
		}
	}
	for _, v := range values {
		switch {
		case !v.Mapped:
			// Sorts ahead of score-based concerns so callers see the unmapped value.
			items = append(items, highlight{label: fmt.Sprintf("No trait mapping for value %q; fit is low-confidence", v.Value), score: -1})
		case v.Score < cfg.ConcernCut:
			items = append(items, highlight{label: fmt.Sprintf("Weak alignment with %s (%.1f)", v.Value, v.Score), score: v.Score})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score < items[j].score
		}
		return items[i].label < items[j].label
	})
	return labels(items, cfg.MaxHighlights)
}

// interviewFocus suggests probes for categories below the recommend threshold.
func interviewFocus(categories []namedCategory, strengths []string, cfg Config) []string {
	focus := []string{}
	for _, c := range categories {
		if c.score.Overall >= cfg.Thresholds.Recommend {
			continue
		}
		if key, ok := weakestKey(c.score.Breakdown); ok {
			focus = append(focus, fmt.Sprintf("Probe %s: %s (%.1f)", c.name, breakdownLabels[key], c.score.Breakdown[key]))
		}
		if len(c.fit.RedFlags) > 0 {
			focus = append(focus, fmt.Sprintf("Watch for %s red flag: %s", c.name, c.fit.RedFlags[0]))
		}
	}
	if len(focus) == 0 && len(strengths) > 0 {
		focus = append(focus, "Confirm depth behind: "+strengths[0])
	}
	if cfg.MaxHighlights > 0 && len(focus) > cfg.MaxHighlights {
		focus = focus[:cfg.MaxHighlights]
	}
	return focus
}

func weakestKey(breakdown map[string]float64) (string, bool) {
	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	weakest := keys[0]
	for _, k := range keys[1:] {
		if breakdown[k] < breakdown[weakest] {
			weakest = k
		}
	}
	return weakest, true
}

func labels(items []highlight, limit int) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, item.label)
	}
	return out
}
