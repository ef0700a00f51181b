package comparison

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/types"
	"github.com/jonathan/ksa-evaluator/internal/weights"
)

// dimensionLabels are the human-readable dimension names
var dimensionLabels = map[string]string{
	types.DimensionTechnicalSkills: "technical skills",
	types.DimensionExperience:      "experience",
	types.DimensionCulturalFit:     "cultural fit",
	types.DimensionPersonality:     "personality fit",
	types.DimensionGrowthPotential: "growth potential",
}

// Engine compares candidates under a validated weight vector
type Engine struct {
	criteria types.ComparisonCriteria
	cfg      Config
}

// NewEngine validates the criteria and configuration. The criteria must sum to
// 1.0 within weights.DefaultTolerance; otherwise a *weights.SumError is returned.
func NewEngine(criteria types.ComparisonCriteria, cfg Config) (*Engine, error) {
	if err := weights.CheckFractions("comparison criteria", criteria.Map()); err != nil {
		return nil, fmt.Errorf("invalid comparison criteria: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comparison config: %w", err)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{criteria: criteria, cfg: cfg}, nil
}

// Criteria returns the engine's weight vector.
func (e *Engine) Criteria() types.ComparisonCriteria {
	return e.criteria
}

// Compare scores and ranks the candidates as of the configured clock.
func (e *Engine) Compare(candidates []*types.CandidateProfile, job *types.JobContext) types.CandidateComparison {
	return e.CompareAt(candidates, job, e.cfg.Now())
}

// CompareAt scores and ranks the candidates as of now, which stamps GeneratedAt and
// closes open-ended positions. Equal inputs give equal results. Nil entries are
// skipped. Candidates with equal overall scores keep their input order.
func (e *Engine) CompareAt(candidates []*types.CandidateProfile, job *types.JobContext, now time.Time) types.CandidateComparison {

	entries := make([]entry, 0, len(candidates))
	for _, profile := range candidates {
		if profile == nil {
			continue
		}
		facts := deriveFacts(profile, job, now)
		dims := scoreDimensions(profile, facts, e.cfg)
		overall := overallScore(dims, e.criteria)

		entries = append(entries, entry{
			score: types.CandidateScore{
				CandidateID:    profile.ID,
				CandidateName:  profile.Name,
				OverallScore:   overall,
				Scores:         dims,
				Strengths:      e.strengths(profile, dims, facts),
				Concerns:       e.concerns(profile, dims, facts, job),
				Recommendation: e.recommendation(overall),
			},
			risks: e.risks(profile, dims),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score.OverallScore > entries[j].score.OverallScore
	})
	scored := make([]types.CandidateScore, len(entries))
	for i := range entries {
		entries[i].score.Rank = i + 1
		scored[i] = entries[i].score
	}

	var jobCopy *types.JobContext
	if job != nil {
		c := *job
		jobCopy = &c
	}

	return types.CandidateComparison{
		Criteria:    e.criteria,
		JobContext:  jobCopy,
		Candidates:  scored,
		Insights:    e.insights(entries),
		GeneratedAt: now,
	}
}

// CompareCandidates merges overrides over DefaultCriteria and compares with the
// default configuration as of asOf. A zero asOf means the current time.
func CompareCandidates(candidates []*types.CandidateProfile, job *types.JobContext, overrides *types.CriteriaOverrides, asOf time.Time) (types.CandidateComparison, error) {
	engine, err := NewEngine(MergeCriteria(DefaultCriteria(), overrides), DefaultConfig())
	if err != nil {
		return types.CandidateComparison{}, err
	}
	if asOf.IsZero() {
		return engine.Compare(candidates, job), nil
	}
	return engine.CompareAt(candidates, job, asOf), nil
}

func (e *Engine) strengths(profile *types.CandidateProfile, dims types.DimensionScores, facts candidateFacts) []string {
	var out []string
	for _, name := range types.DimensionNames {
		if v := dims.Get(name); v > e.cfg.StrengthCut {
			out = append(out, fmt.Sprintf("Excellent %s (%.1f)", dimensionLabels[name], v))
		}
	}

	p := profile.Personality
	if p.Conscientiousness > e.cfg.HighConscientiousness {
		out = append(out, "Highly conscientious and detail-oriented")
	}
	if p.Openness > e.cfg.HighOpenness {
		out = append(out, "Very open to new ideas and approaches")
	}
	if facts.years >= e.cfg.SeniorYears {
		out = append(out, fmt.Sprintf("Extensive experience (%.1f years)", facts.years))
	}
	if facts.coverage == 1 {
		out = append(out, "Covers every required skill")
	}
	return limit(out, e.cfg.MaxHighlights)
}

func (e *Engine) concerns(profile *types.CandidateProfile, dims types.DimensionScores, facts candidateFacts, job *types.JobContext) []string {
	var out []string
	for _, name := range types.DimensionNames {
		if v := dims.Get(name); v < e.cfg.ConcernCut {
			out = append(out, fmt.Sprintf("Limited %s (%.1f)", dimensionLabels[name], v))
		}
	}

	if n := profile.Personality.Neuroticism; n > e.cfg.HighNeuroticism {
		out = append(out, fmt.Sprintf("May struggle under pressure (neuroticism %.0f)", n))
	}
	if facts.years < e.cfg.JuniorYears {
		out = append(out, fmt.Sprintf("Limited professional experience (%.1f years)", facts.years))
	}
	if job != nil && job.MinYears > 0 && facts.years < job.MinYears {
		out = append(out, fmt.Sprintf("Below required experience (%.1f of %.1f years)", facts.years, job.MinYears))
	}
	if len(facts.missingSkills) > 0 {
		out = append(out, "Missing required skills: "+strings.Join(facts.missingSkills, ", "))
	}
	for _, flag := range profile.InterviewPerformance.RedFlags {
		if flag = strings.TrimSpace(flag); flag != "" {
			out = append(out, "Interview red flag: "+flag)
		}
	}
	return limit(out, e.cfg.MaxHighlights)
}

// recommendation returns the one-line recommendation for an overall score.
func (e *Engine) recommendation(score float64) string {
	t := e.cfg.Tiers
	switch {
	case score >= t.Highly:
		return "Highly recommended: exceptional fit, prioritise for the final round"
	case score >= t.Recommended:
		return "Recommended: strong candidate, advance to the next round"
	case score >= t.Consider:
		return "Consider: solid candidate with gaps worth probing"
	case score >= t.Borderline:
		return "Borderline: proceed only if the pool is thin"
	default:
		return "Not recommended for this role"
	}
}

func limit(items []string, n int) []string {
	if items == nil {
		return []string{}
	}
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
