package comparison

import (
	"errors"
	"testing"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/testutil"
	"github.com/jonathan/ksa-evaluator/internal/types"
	"github.com/jonathan/ksa-evaluator/internal/weights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedConfig() Config {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return testutil.EvaluationDate }
	return cfg
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultCriteria(), fixedConfig())
	require.NoError(t, err)
	return engine
}

// newUnlimitedEngine keeps every strength and concern so rule output can be asserted.
func newUnlimitedEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := fixedConfig()
	cfg.MaxHighlights = 0
	engine, err := NewEngine(DefaultCriteria(), cfg)
	require.NoError(t, err)
	return engine
}

func TestNewEngine_RejectsBadWeightSum(t *testing.T) {
	criteria := DefaultCriteria()
	criteria.TechnicalSkills = 0.6

	engine, err := NewEngine(criteria, DefaultConfig())
	require.Error(t, err)
	assert.Nil(t, engine)

	var sumErr *weights.SumError
	require.True(t, errors.As(err, &sumErr))
	assert.InDelta(t, 1.3, sumErr.Sum, 1e-9)
}

func TestNewEngine_AcceptsWithinTolerance(t *testing.T) {
	criteria := DefaultCriteria()
	criteria.GrowthPotential = 0.105

	_, err := NewEngine(criteria, DefaultConfig())
	assert.NoError(t, err)
}

func TestMergeCriteria(t *testing.T) {
	tech := 0.4
	growth := 0.0
	merged := MergeCriteria(DefaultCriteria(), &types.CriteriaOverrides{TechnicalSkills: &tech, GrowthPotential: &growth})

	assert.Equal(t, 0.4, merged.TechnicalSkills)
	assert.Equal(t, 0.0, merged.GrowthPotential)
	assert.Equal(t, 0.25, merged.Experience)
	assert.Equal(t, DefaultCriteria(), MergeCriteria(DefaultCriteria(), nil))
}

func TestCompare_Deterministic(t *testing.T) {
	engine := newTestEngine(t)
	candidates := []*types.CandidateProfile{testutil.StrongProfile(), testutil.WeakProfile(), testutil.EmptyProfile()}

	assert.Equal(t, engine.Compare(candidates, nil), engine.Compare(candidates, nil))
}

func TestCompareCandidates_ExplicitDefaultsMatchImplicit(t *testing.T) {
	candidates := []*types.CandidateProfile{testutil.WeakProfile(), testutil.StrongProfile(), testutil.EmptyProfile()}
	d := DefaultCriteria()
	explicit := &types.CriteriaOverrides{
		TechnicalSkills: &d.TechnicalSkills,
		Experience:      &d.Experience,
		CulturalFit:     &d.CulturalFit,
		Personality:     &d.Personality,
		GrowthPotential: &d.GrowthPotential,
	}

	implicit, err := CompareCandidates(candidates, nil, nil, testutil.EvaluationDate)
	require.NoError(t, err)
	withWeights, err := CompareCandidates(candidates, nil, explicit, testutil.EvaluationDate)
	require.NoError(t, err)

	assert.Equal(t, implicit, withWeights)
}

func TestCompareCandidates_IdenticalCallsMatch(t *testing.T) {
	candidates := []*types.CandidateProfile{testutil.StrongProfile(), testutil.WeakProfile()}

	first, err := CompareCandidates(candidates, nil, nil, testutil.EvaluationDate)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := CompareCandidates(candidates, nil, nil, testutil.EvaluationDate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, testutil.EvaluationDate, first.GeneratedAt)
}

func TestCompareAt_OverridesEngineClock(t *testing.T) {
	engine := newTestEngine(t)
	candidates := []*types.CandidateProfile{testutil.StrongProfile()}
	later := testutil.EvaluationDate.AddDate(1, 0, 0)

	result := engine.CompareAt(candidates, nil, later)
	assert.Equal(t, later, result.GeneratedAt)
	assert.Equal(t, testutil.EvaluationDate, engine.Compare(candidates, nil).GeneratedAt)
}

func TestCompare_RanksByOverallScore(t *testing.T) {
	result := newTestEngine(t).Compare([]*types.CandidateProfile{testutil.WeakProfile(), testutil.StrongProfile()}, nil)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "cand-strong", result.Candidates[0].CandidateID)
	assert.Equal(t, 1, result.Candidates[0].Rank)
	assert.Equal(t, "cand-weak", result.Candidates[1].CandidateID)
	assert.Equal(t, 2, result.Candidates[1].Rank)
	assert.Greater(t, result.Candidates[0].OverallScore, result.Candidates[1].OverallScore)
	assert.Equal(t, testutil.EvaluationDate, result.GeneratedAt)
}

func TestCompare_TiesKeepInputOrder(t *testing.T) {
	a := testutil.StrongProfile()
	a.ID, a.Name = "twin-a", "Twin A"
	b := testutil.StrongProfile()
	b.ID, b.Name = "twin-b", "Twin B"
	engine := newTestEngine(t)

	forward := engine.Compare([]*types.CandidateProfile{a, b}, nil)
	require.Equal(t, forward.Candidates[0].OverallScore, forward.Candidates[1].OverallScore)
	assert.Equal(t, "twin-a", forward.Candidates[0].CandidateID)
	assert.Equal(t, "twin-b", forward.Candidates[1].CandidateID)

	reverse := engine.Compare([]*types.CandidateProfile{b, a}, nil)
	assert.Equal(t, "twin-b", reverse.Candidates[0].CandidateID)
	assert.Equal(t, "twin-a", reverse.Candidates[1].CandidateID)

	require.NotEmpty(t, forward.Insights.Recommendations)
	assert.Contains(t, forward.Insights.Recommendations[0], "Close race")
}

func TestCompare_ScoresBounded(t *testing.T) {
	result := newTestEngine(t).Compare([]*types.CandidateProfile{testutil.StrongProfile(), testutil.WeakProfile(), testutil.EmptyProfile()}, nil)

	for _, c := range result.Candidates {
		assert.GreaterOrEqual(t, c.OverallScore, 0.0)
		assert.LessOrEqual(t, c.OverallScore, 10.0)
		for _, name := range types.DimensionNames {
			v := c.Scores.Get(name)
			assert.GreaterOrEqual(t, v, 0.0, "%s/%s", c.CandidateID, name)
			assert.LessOrEqual(t, v, 10.0, "%s/%s", c.CandidateID, name)
		}
		assert.LessOrEqual(t, len(c.Strengths), 5)
		assert.LessOrEqual(t, len(c.Concerns), 5)
		assert.NotEmpty(t, c.Recommendation)
	}
}

func TestCompare_SkipsNilAndHandlesEmpty(t *testing.T) {
	engine := newTestEngine(t)

	empty := engine.Compare(nil, nil)
	assert.Empty(t, empty.Candidates)
	assert.Equal(t, []string{"No candidates to compare"}, empty.Insights.Recommendations)

	single := engine.Compare([]*types.CandidateProfile{nil, testutil.StrongProfile()}, nil)
	require.Len(t, single.Candidates, 1)
	assert.Empty(t, single.Insights.KeyDifferentiators)
	assert.Contains(t, single.Insights.Recommendations[0], "Only Avery Strong was evaluated")
}

func TestCompare_RequiredSkillsAndIndustry(t *testing.T) {
	job := &types.JobContext{JobTitle: "Backend Engineer", Industry: "FinTech", RequiredSkills: []string{"golang", "Rust"}, MinYears: 3}
	result := newUnlimitedEngine(t).Compare([]*types.CandidateProfile{testutil.StrongProfile(), testutil.WeakProfile()}, job)

	strong := result.Candidates[0]
	assert.Contains(t, strong.Concerns, "Missing required skills: Rust")

	weak := result.Candidates[1]
	assert.Contains(t, weak.Concerns, "Below required experience (1.0 of 3.0 years)")
	require.NotNil(t, result.JobContext)
	assert.Equal(t, "FinTech", result.JobContext.Industry)
}

func TestCompare_StrengthsAndConcerns(t *testing.T) {
	result := newUnlimitedEngine(t).Compare([]*types.CandidateProfile{testutil.StrongProfile(), testutil.WeakProfile()}, nil)

	strong := result.Candidates[0]
	assert.Contains(t, strong.Strengths, "Highly conscientious and detail-oriented")
	assert.Contains(t, strong.Strengths, "Extensive experience (10.0 years)")

	weak := result.Candidates[1]
	assert.Contains(t, weak.Concerns, "May struggle under pressure (neuroticism 80)")
	assert.Contains(t, weak.Concerns, "Limited professional experience (1.0 years)")
	assert.Equal(t, "Not recommended for this role", weak.Recommendation)
}

func TestCompare_Insights(t *testing.T) {
	result := newTestEngine(t).Compare([]*types.CandidateProfile{testutil.StrongProfile(), testutil.WeakProfile()}, nil)
	insights := result.Insights

	assert.Equal(t, result.Candidates[0].OverallScore, insights.Distribution.Max)
	assert.Equal(t, result.Candidates[1].OverallScore, insights.Distribution.Min)

	require.NotEmpty(t, insights.KeyDifferentiators)
	assert.LessOrEqual(t, len(insights.KeyDifferentiators), 3)
	for i, d := range insights.KeyDifferentiators {
		assert.Greater(t, d.Difference, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, insights.KeyDifferentiators[i-1].Difference, d.Difference)
		}
	}
	assert.Contains(t, insights.Recommendations[0], "clear standout")

	require.Len(t, insights.RiskFactors, 1)
	assert.Equal(t, "cand-weak", insights.RiskFactors[0].CandidateID)
	assert.Contains(t, insights.RiskFactors[0].Factors, "Elevated neuroticism (80)")
}

func TestDistribution(t *testing.T) {
	d := distribution([]float64{8, 4, 6})
	assert.Equal(t, 6.0, d.Mean)
	assert.Equal(t, 6.0, d.Median)
	assert.Equal(t, 4.0, d.Min)
	assert.Equal(t, 8.0, d.Max)
	assert.Equal(t, 1.63, d.StdDev)

	even := distribution([]float64{2, 4, 6, 8})
	assert.Equal(t, 5.0, even.Median)

	assert.Equal(t, types.ScoreDistribution{}, distribution(nil))
}

func TestTraitFit(t *testing.T) {
	r := TraitRange{Low: 60, High: 90}
	assert.Equal(t, 10.0, traitFit(75, r))
	assert.Equal(t, 10.0, traitFit(60, r))
	assert.Equal(t, 8.0, traitFit(50, r))
	assert.Equal(t, 8.0, traitFit(100, r))
	assert.Equal(t, 0.0, traitFit(0, TraitRange{Low: 60, High: 100}))
}

func TestCanonicalSkill(t *testing.T) {
	assert.Equal(t, "go", canonicalSkill("  Golang "))
	assert.Equal(t, "kubernetes", canonicalSkill("K8s"))
	assert.Equal(t, "rust", canonicalSkill("Rust"))
	assert.Equal(t, "", canonicalSkill("   "))
}
