package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ksa-evaluator/internal/comparison"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// ComparisonToExcel writes a comparison workbook and returns the path written.
func ComparisonToExcel(c *types.CandidateComparison, outputPath string) (string, error) {
	f, err := comparisonWorkbook(c)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return save(f, outputPath)
}

// WriteComparisonExcel streams a comparison workbook to w.
func WriteComparisonExcel(c *types.CandidateComparison, w io.Writer) error {
	f, err := comparisonWorkbook(c)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f, w)
}

func comparisonWorkbook(c *types.CandidateComparison) (*excelize.File, error) {
	f, st, err := newWorkbook(SheetSummary, SheetRanked, SheetInsights)
	if err != nil {
		return nil, fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := comparisonSummary(f, st, c); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := rankedCandidates(f, st, c); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}
	if err := comparisonInsights(f, st, c); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create insights sheet: %w", err)
	}
	return f, nil
}

func comparisonSummary(f *excelize.File, st *styles, c *types.CandidateComparison) error {
	s := newSheet(f, SheetSummary, st, 28, 60)

	s.title("Candidate Comparison")
	s.skip()
	if c.JobContext != nil {
		s.field("Job Title:", c.JobContext.JobTitle)
		s.field("Industry:", c.JobContext.Industry)
		s.field("Required Skills:", strings.Join(c.JobContext.RequiredSkills, ", "))
		s.field("Minimum Years:", c.JobContext.MinYears)
	}
	s.field("Generated:", c.GeneratedAt.Format(timestampLayout))
	s.field("Candidates Compared:", len(c.Candidates))
	s.skip()

	s.title("Criteria")
	for _, dim := range types.DimensionNames {
		s.field(dim, c.Criteria.Map()[dim])
	}
	s.skip()

	d := c.Insights.Distribution
	s.title("Score Distribution")
	s.field("Mean:", d.Mean)
	s.field("Median:", d.Median)
	s.field("Highest:", d.Max)
	s.field("Lowest:", d.Min)
	s.field("Std Dev:", d.StdDev)
	return s.err
}

func rankedCandidates(f *excelize.File, st *styles, c *types.CandidateComparison) error {
	s := newSheet(f, SheetRanked, st, 8, 25, 12, 14, 14, 14, 14, 14, 50, 50, 55)
	s.headers("Rank", "Candidate", "Overall", "Technical", "Experience", "Cultural Fit",
		"Personality", "Growth", "Strengths", "Concerns", "Recommendation")

	tiers := comparison.DefaultConfig().Tiers
	for _, cand := range c.Candidates {
		s.values(st.bands[comparisonBand(cand.OverallScore, tiers)],
			cand.Rank,
			cand.CandidateName,
			cand.OverallScore,
			cand.Scores.TechnicalSkills,
			cand.Scores.Experience,
			cand.Scores.CulturalFit,
			cand.Scores.Personality,
			cand.Scores.GrowthPotential,
			strings.Join(cand.Strengths, "\n"),
			strings.Join(cand.Concerns, "\n"),
			cand.Recommendation,
		)
	}
	s.autoFilter(11)
	s.freezeHeader()
	return s.err
}

func comparisonInsights(f *excelize.File, st *styles, c *types.CandidateComparison) error {
	s := newSheet(f, SheetInsights, st, 30, 80)

	s.title("Recommendations")
	for _, rec := range c.Insights.Recommendations {
		s.values(st.wrap, "", rec)
	}
	s.skip()

	s.title("Key Differentiators")
	if len(c.Insights.KeyDifferentiators) == 0 {
		s.values(st.wrap, "", "None")
	}
	for _, d := range c.Insights.KeyDifferentiators {
		s.values(st.wrap, d.Dimension, d.Description)
	}
	s.skip()

	s.title("Risk Factors")
	if len(c.Insights.RiskFactors) == 0 {
		s.values(st.wrap, "", "None")
	}
	for _, r := range c.Insights.RiskFactors {
		s.values(st.wrap, r.CandidateName, strings.Join(r.Factors, "\n"))
	}
	return s.err
}

func comparisonBand(score float64, tiers comparison.RecommendationTiers) band {
	switch {
	case score >= tiers.Highly:
		return bandStrong
	case score >= tiers.Recommended:
		return bandGood
	case score >= tiers.Consider:
		return bandFair
	default:
		return bandPoor
	}
}
