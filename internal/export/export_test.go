package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ksa-evaluator/internal/comparison"
	"github.com/jonathan/ksa-evaluator/internal/report"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/testutil"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

func sampleComparison(t *testing.T) *types.CandidateComparison {
	t.Helper()
	cfg := comparison.DefaultConfig()
	cfg.Now = func() time.Time { return testutil.EvaluationDate }
	engine, err := comparison.NewEngine(comparison.DefaultCriteria(), cfg)
	require.NoError(t, err)

	c := engine.Compare([]*types.CandidateProfile{testutil.WeakProfile(), testutil.StrongProfile()},
		&types.JobContext{JobTitle: "Backend Engineer", RequiredSkills: []string{"Go"}})
	return &c
}

func sampleReport() *types.MultiStageEvaluationReport {
	s1 := testutil.CompletedStage("cand-1", types.Stage1, 6, testutil.EvaluationDate)
	s1.Strengths = []string{"Clear communicator"}
	s2 := testutil.CompletedStage("cand-1", types.Stage2, 8, testutil.EvaluationDate)
	s2.OverallRecommendation = types.RecommendationRecommend
	s2.EvaluatorName = "Sam Reviewer"
	r := report.Build("cand-1", "backend", []types.StageKSAScore{s1, s2}, stages.DefaultConfig(), testutil.EvaluationDate)
	return &r
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.json")
	require.NoError(t, WriteJSONFile(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded types.MultiStageEvaluationReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "cand-1", decoded.CandidateID)
}

func TestEnsureXLSX(t *testing.T) {
	assert.Equal(t, "out.xlsx", EnsureXLSX("out"))
	assert.Equal(t, "out.XLSX", EnsureXLSX("out.XLSX"))
	assert.Equal(t, filepath.Join("dir", "out.xlsx"), EnsureXLSX("dir/./out.xlsx"))
}

func TestComparisonToExcel(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "comparison")

	written, err := ComparisonToExcel(sampleComparison(t), outputPath)
	require.NoError(t, err)
	assert.Equal(t, outputPath+".xlsx", written)

	f, err := excelize.OpenFile(written)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetRanked, SheetInsights}, f.GetSheetList())

	title, err := f.GetCellValue(SheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Candidate Comparison", title)

	rows, err := f.GetRows(SheetRanked)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Rank", rows[0][0])
	assert.Equal(t, "Avery Strong", rows[1][1])
	assert.Equal(t, "Jordan Weak", rows[2][1])
}

func TestWriteComparisonExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteComparisonExcel(sampleComparison(t), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), SheetInsights)
}

func TestReportToExcel(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.xlsx")

	written, err := ReportToExcel(sampleReport(), outputPath)
	require.NoError(t, err)
	assert.Equal(t, outputPath, written)

	f, err := excelize.OpenFile(written)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetProgression, SheetStages}, f.GetSheetList())

	progression, err := f.GetRows(SheetProgression)
	require.NoError(t, err)
	require.Len(t, progression, 1+len(types.KSANames)+len(types.AttributeNames))
	assert.Equal(t, "knowledge", progression[1][0])
	assert.Equal(t, "-", progression[1][3])

	stageRows, err := f.GetRows(SheetStages)
	require.NoError(t, err)
	require.Len(t, stageRows, 4)
	assert.Equal(t, "Phone Screen", stageRows[1][0])
	assert.Equal(t, "Sam Reviewer", stageRows[2][1])
	assert.Equal(t, "not completed", stageRows[3][3])
}

func TestBands(t *testing.T) {
	tiers := comparison.DefaultConfig().Tiers
	assert.Equal(t, bandStrong, comparisonBand(9, tiers))
	assert.Equal(t, bandGood, comparisonBand(7.5, tiers))
	assert.Equal(t, bandFair, comparisonBand(7, tiers))
	assert.Equal(t, bandPoor, comparisonBand(2, tiers))

	assert.Equal(t, bandGood, recommendationBand(types.RecommendationRecommend))
	assert.Equal(t, bandPoor, recommendationBand(""))
}
