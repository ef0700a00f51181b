package comparison

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/evaluation"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// seniorityKeywords mark a title as a step up in role progression
var seniorityKeywords = []string{"senior", "lead", "staff", "principal", "architect", "manager", "director", "head"}

// candidateFacts are the derived values shared by scoring and highlight rules
type candidateFacts struct {
	years          float64
	maxReports     int
	coverage       float64 // -1 when the job context lists no required skills
	missingSkills  []string
	industryMatch  bool
	industryWanted bool
}

func deriveFacts(profile *types.CandidateProfile, job *types.JobContext, asOf time.Time) candidateFacts {
	facts := candidateFacts{
		years:    evaluation.TotalYears(profile.Experience, asOf),
		coverage: -1,
	}
	for _, p := range profile.Experience.Positions() {
		if p.DirectReports > facts.maxReports {
			facts.maxReports = p.DirectReports
		}
	}
	if job == nil {
		return facts
	}

	facts.coverage, facts.missingSkills = requiredSkillCoverage(profile.TechnicalSkills, job.RequiredSkills)
	if industry := strings.TrimSpace(job.Industry); industry != "" {
		facts.industryWanted = true
		for _, p := range profile.Experience.Positions() {
			if strings.EqualFold(strings.TrimSpace(p.Industry), industry) {
				facts.industryMatch = true
				break
			}
		}
	}
	return facts
}

func scoreDimensions(profile *types.CandidateProfile, facts candidateFacts, cfg Config) types.DimensionScores {
	return types.DimensionScores{
		TechnicalSkills: finalize(technicalScore(profile, cfg)),
		Experience:      finalize(experienceScore(profile, facts)),
		CulturalFit:     finalize(culturalFitScore(profile)),
		Personality:     finalize(personalityScore(profile.Personality, cfg.Ideal)),
		GrowthPotential: finalize(growthScore(profile)),
	}
}

// technicalScore blends tier proficiency, system design and the technical interview.
func technicalScore(profile *types.CandidateProfile, cfg Config) float64 {
	tech := profile.TechnicalSkills
	tiers := make([]float64, 0, len(tech.ProgrammingLanguages)+len(tech.Frameworks)+len(tech.Tools))
	for _, group := range [][]types.SkillEntry{tech.ProgrammingLanguages, tech.Frameworks, tech.Tools} {
		for _, s := range group {
			tiers = append(tiers, cfg.Proficiency.Value(s.Proficiency))
		}
	}
	sd := tech.SystemDesign
	ti := profile.InterviewPerformance.Technical

	return mean(tiers...)*0.4 +
		mean(sd.Scalability, sd.Architecture, sd.Security, sd.Performance)*0.3 +
		mean(ti.Coding, ti.SystemDesign, ti.Troubleshooting)*0.3
}

// experienceScore awards up to 5 for tenure, 2 for progression, 1 for industry,
// 1.5 for required skills and 0.5 for people management.
func experienceScore(profile *types.CandidateProfile, facts candidateFacts) float64 {
	score := math.Min(facts.years/10, 1) * 5

	progression := 0
	for _, p := range profile.Experience.Positions() {
		title := strings.ToLower(p.Title)
		for _, kw := range seniorityKeywords {
			if strings.Contains(title, kw) {
				progression++
				break
			}
		}
	}
	score += math.Min(float64(progression), 2)

	switch {
	case !facts.industryWanted:
		score += 0.5
	case facts.industryMatch:
		score++
	}

	if facts.coverage < 0 {
		score += 0.75
	} else {
		score += facts.coverage * 1.5
	}

	score += math.Min(float64(facts.maxReports)/5, 1) * 0.5
	return score
}

func culturalFitScore(profile *types.CandidateProfile) float64 {
	p := profile.Personality
	return p.Agreeableness/100*3.5 + p.Conscientiousness/100*3.5 + profile.InterviewPerformance.Behavioral.Teamwork*0.3
}

// personalityScore averages per-trait fit; a trait inside its band scores 10 and
// loses a point per 5 points of distance outside it.
func personalityScore(p types.PersonalityProfile, ideal IdealPersonality) float64 {
	return mean(
		traitFit(p.Openness, ideal.Openness),
		traitFit(p.Conscientiousness, ideal.Conscientiousness),
		traitFit(p.Extraversion, ideal.Extraversion),
		traitFit(p.Agreeableness, ideal.Agreeableness),
		traitFit(p.Neuroticism, ideal.Neuroticism),
	)
}

func traitFit(value float64, r TraitRange) float64 {
	distance := 0.0
	switch {
	case value < r.Low:
		distance = r.Low - value
	case value > r.High:
		distance = value - r.High
	}
	return math.Max(0, 10-distance/5)
}

func growthScore(profile *types.CandidateProfile) float64 {
	c := profile.Cognitive
	certs := math.Min(float64(len(profile.Experience.Certifications)), 3) / 3
	return profile.Personality.Openness/100*3 +
		mean(c.LogicalReasoning, c.AbstractReasoning, c.CreativeThinking)*0.4 +
		profile.InterviewPerformance.Behavioral.Adaptability*0.2 +
		certs
}

func overallScore(s types.DimensionScores, c types.ComparisonCriteria) float64 {
	return finalize(c.TechnicalSkills*s.TechnicalSkills +
		c.Experience*s.Experience +
		c.CulturalFit*s.CulturalFit +
		c.Personality*s.Personality +
		c.GrowthPotential*s.GrowthPotential)
}

func finalize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 10 {
		v = 10
	}
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
