package evaluation

import (
	"math"
	"sort"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/types"
)

// Breakdown keys
const (
	keySDLC          = "sdlcKnowledge"
	keyDocumentation = "technicalDocumentation"
	keyIndustry      = "industryKnowledge"
	keyMethodology   = "methodologyKnowledge"
	keySystemDesign  = "systemDesignKnowledge"

	keyProgramming    = "programmingProficiency"
	keyFrameworks     = "frameworkProficiency"
	keyProblemSolving = "problemSolving"
	keyCodeQuality    = "codeQuality"
	keyCollaboration  = "collaboration"

	keyLearningAgility  = "learningAgility"
	keyAdaptability     = "adaptability"
	keyLeadership       = "leadership"
	keyCommunication    = "communication"
	keyCriticalThinking = "criticalThinking"
)

// breakdownLabels are the human-readable names used in strengths and concerns
var breakdownLabels = map[string]string{
	keySDLC:             "SDLC knowledge",
	keyDocumentation:    "technical documentation",
	keyIndustry:         "industry knowledge",
	keyMethodology:      "methodology knowledge",
	keySystemDesign:     "system design knowledge",
	keyProgramming:      "programming proficiency",
	keyFrameworks:       "framework and tooling proficiency",
	keyProblemSolving:   "problem solving",
	keyCodeQuality:      "code quality practices",
	keyCollaboration:    "collaboration",
	keyLearningAgility:  "learning agility",
	keyAdaptability:     "adaptability",
	keyLeadership:       "leadership",
	keyCommunication:    "communication",
	keyCriticalThinking: "critical thinking",
}

// adjuster perturbs a raw sub-score before it is clamped
type adjuster func(float64) float64

func identity(v float64) float64 { return v }

// combine finalizes each sub-score and folds them with the weight vector.
func combine(raw map[string]float64, w map[string]float64, adjust adjuster) (float64, map[string]float64) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	breakdown := make(map[string]float64, len(raw))
	overall := 0.0
	for _, k := range keys {
		score := finalize(adjust(raw[k]))
		breakdown[k] = score
		overall += w[k] * score
	}
	return finalize(overall), breakdown
}

// EvaluateKnowledge scores the Knowledge category. The framework category is
// accepted for labelling only; the score derives from the candidate profile.
func EvaluateKnowledge(profile *types.CandidateProfile, _ types.JobFitCategory, cfg Config) types.CategoryScore {
	return knowledgeScore(profile, cfg, time.Time{}, identity)
}

// EvaluateSkills scores the Skills category.
func EvaluateSkills(profile *types.CandidateProfile, _ types.JobFitCategory, cfg Config) types.CategoryScore {
	return skillsScore(profile, cfg, time.Time{}, identity)
}

// EvaluateAbility scores the Ability category.
func EvaluateAbility(profile *types.CandidateProfile, _ types.JobFitCategory, cfg Config) types.CategoryScore {
	return abilityScore(profile, cfg, time.Time{}, identity)
}

func knowledgeScore(profile *types.CandidateProfile, cfg Config, asOf time.Time, adjust adjuster) types.CategoryScore {
	tech := profile.TechnicalSkills
	m := tech.Methodologies
	sd := tech.SystemDesign
	years := TotalYears(profile.Experience, asOf)

	langYears := 0.0
	for _, lang := range tech.ProgrammingLanguages {
		langYears += lang.Years
	}
	methodAvg := mean(m.Agile, m.DevOps, m.Testing, m.CodeReview)
	designAvg := mean(sd.Scalability, sd.Architecture, sd.Security, sd.Performance)

	raw := map[string]float64{
		keySDLC:          5 + methodAvg*0.3 + math.Min(langYears/5, 2),
		keyDocumentation: 3 + profile.Personality.Conscientiousness/100*4 + m.CodeReview*0.3,
		keyIndustry:      3 + math.Min(years*0.5, 5) + math.Min(float64(len(profile.Experience.Certifications))*0.5, 2),
		keyMethodology:   2 + methodAvg*0.8,
		keySystemDesign:  designAvg*0.8 + math.Min(years/10, 1)*2,
	}

	overall, breakdown := combine(raw, cfg.Knowledge.Map(), adjust)
	return types.CategoryScore{
		Overall:    overall,
		Breakdown:  breakdown,
		Confidence: confidence(profile, cfg, asOf),
	}
}

func skillsScore(profile *types.CandidateProfile, cfg Config, asOf time.Time, adjust adjuster) types.CategoryScore {
	tech := profile.TechnicalSkills
	iv := profile.InterviewPerformance
	p := profile.Personality

	tooling := make([]types.SkillEntry, 0, len(tech.Frameworks)+len(tech.Tools))
	tooling = append(tooling, tech.Frameworks...)
	tooling = append(tooling, tech.Tools...)

	raw := map[string]float64{
		keyProgramming:    proficiencyScore(tech.ProgrammingLanguages, cfg.Proficiency),
		keyFrameworks:     proficiencyScore(tooling, cfg.Proficiency),
		keyProblemSolving: iv.Technical.Troubleshooting*0.4 + profile.Cognitive.LogicalReasoning*0.3 + iv.Behavioral.ProblemSolving*0.3,
		keyCodeQuality:    mean(tech.Methodologies.Testing, tech.Methodologies.CodeReview)*0.7 + p.Conscientiousness/100*3,
		keyCollaboration:  iv.Behavioral.Teamwork*0.6 + p.Agreeableness/100*4,
	}

	overall, breakdown := combine(raw, cfg.Skills.Map(), adjust)
	return types.CategoryScore{
		Overall:    overall,
		Breakdown:  breakdown,
		Confidence: confidence(profile, cfg, asOf),
	}
}

func abilityScore(profile *types.CandidateProfile, cfg Config, asOf time.Time, adjust adjuster) types.CategoryScore {
	iv := profile.InterviewPerformance
	p := profile.Personality
	c := profile.Cognitive

	maxReports := 0
	for _, pos := range profile.Experience.Positions() {
		if pos.DirectReports > maxReports {
			maxReports = pos.DirectReports
		}
	}

	raw := map[string]float64{
		keyLearningAgility:  p.Openness/100*4 + c.AbstractReasoning*0.6,
		keyAdaptability:     iv.Behavioral.Adaptability*0.6 + (100-p.Neuroticism)/100*4,
		keyLeadership:       iv.Behavioral.Leadership*0.6 + math.Min(float64(maxReports), 10)*0.2 + p.Extraversion/100*2,
		keyCommunication:    mean(iv.Behavioral.Communication, iv.Technical.Communication)*0.7 + p.Extraversion/100*3,
		keyCriticalThinking: mean(c.LogicalReasoning, c.AbstractReasoning, c.CreativeThinking),
	}

	overall, breakdown := combine(raw, cfg.Ability.Map(), adjust)
	return types.CategoryScore{
		Overall:    overall,
		Breakdown:  breakdown,
		Confidence: confidence(profile, cfg, asOf),
	}
}

// proficiencyScore averages tier values and adds up to half a point for tenure.
// An empty list scores 0.
func proficiencyScore(entries []types.SkillEntry, tiers ProficiencyValues) float64 {
	if len(entries) == 0 {
		return 0
	}
	tierTotal, yearsTotal := 0.0, 0.0
	for _, e := range entries {
		tierTotal += tiers.Value(e.Proficiency)
		yearsTotal += e.Years
	}
	n := float64(len(entries))
	return tierTotal/n + math.Min(yearsTotal/n/10, 0.5)
}

// Confidence estimates how much evidence backs the scores. It never feeds back into a score.
func Confidence(profile *types.CandidateProfile, cfg Config) float64 {
	return confidence(profile, cfg, time.Time{})
}

func confidence(profile *types.CandidateProfile, cfg Config, asOf time.Time) float64 {
	experienceShare := 1 - cfg.ConfidenceFloor - cfg.EducationBonus
	ratio := 0.0
	if cfg.ExperienceTargetYears > 0 {
		ratio = math.Min(TotalYears(profile.Experience, asOf)/cfg.ExperienceTargetYears, 1)
	}

	c := cfg.ConfidenceFloor + experienceShare*ratio
	if len(profile.Experience.Education) > 0 {
		c += cfg.EducationBonus
	}
	return round2(math.Max(0, math.Min(1, c)))
}
