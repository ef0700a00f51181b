package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ksa-evaluator/internal/config"
	"github.com/jonathan/ksa-evaluator/internal/export"
	"github.com/jonathan/ksa-evaluator/internal/server"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

var (
	validCandidate        = filepath.Join("..", "..", "testdata", "valid", "candidate_profile.json")
	juniorCandidate       = filepath.Join("..", "..", "testdata", "valid", "candidate_profile_junior.json")
	validFramework        = filepath.Join("..", "..", "testdata", "valid", "ksa_framework.json")
	validJobContext       = filepath.Join("..", "..", "testdata", "valid", "job_context.json")
	validStage2           = filepath.Join("..", "..", "testdata", "valid", "stage_score.json")
	weightingSumFramework = filepath.Join("..", "..", "testdata", "invalid", "framework_weighting_sum.json")
)

// capture points a command's output streams at buffers for the duration of a test
func capture(t *testing.T, cmd *cobra.Command) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	return stdout, stderr
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resetEvaluateFlags(t *testing.T) {
	t.Cleanup(func() {
		evaluateCandidate, evaluateFramework, evaluateJobTitle = "", "", ""
		evaluateEvaluator, evaluateDate, evaluateConfig, evaluateOutput = "", "", "", ""
		evaluateVerbose = false
	})
}

func TestEvaluateCommand(t *testing.T) {
	resetEvaluateFlags(t)
	stdout, stderr := capture(t, evaluateCmd)

	evaluateCandidate = validCandidate
	evaluateFramework = validFramework
	evaluateDate = "2024-06-01"
	evaluateEvaluator = "Morgan Panel"
	evaluateVerbose = true
	evaluateOutput = filepath.Join(t.TempDir(), "out", "evaluation.json")

	require.NoError(t, runEvaluate(evaluateCmd, nil))
	assert.Contains(t, stdout.String(), "Evaluated Riley File")
	assert.Contains(t, stderr.String(), "CANDIDATE EVALUATION")

	data, err := os.ReadFile(evaluateOutput)
	require.NoError(t, err)
	var ev types.CandidateEvaluation
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "cand-file", ev.CandidateID)
	assert.Equal(t, "Backend Engineer", ev.Context.JobTitle)
	assert.Equal(t, "Morgan Panel", ev.Context.Evaluator)
	assert.Equal(t, 2024, ev.Context.EvaluationDate.Year())
	assert.Len(t, ev.CompanyValueFit, 3)
}

func TestEvaluateCommand_Stdout(t *testing.T) {
	resetEvaluateFlags(t)
	stdout, _ := capture(t, evaluateCmd)

	evaluateCandidate = validCandidate
	evaluateFramework = validFramework
	evaluateJobTitle = "Platform Engineer"

	require.NoError(t, runEvaluate(evaluateCmd, nil))
	var ev types.CandidateEvaluation
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &ev))
	assert.Equal(t, "Platform Engineer", ev.Context.JobTitle)
}

func TestEvaluateCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		framework string
		date      string
		want      string
	}{
		{"missing candidate file", "does-not-exist.json", validFramework, "", "failed to read candidate file"},
		{"weighting sum", validCandidate, weightingSumFramework, "", "invalid framework"},
		{"bad date", validCandidate, validFramework, "June 1st", "invalid --date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetEvaluateFlags(t)
			capture(t, evaluateCmd)
			evaluateCandidate, evaluateFramework, evaluateDate = tt.candidate, tt.framework, tt.date

			err := runEvaluate(evaluateCmd, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func resetCompareFlags(t *testing.T) {
	t.Cleanup(func() {
		compareCandidates = nil
		compareJobContext, compareConfig, compareOutput = "", "", ""
		compareVerbose = false
	})
}

func TestCompareCommand_JSON(t *testing.T) {
	resetCompareFlags(t)
	stdout, stderr := capture(t, compareCmd)

	compareCandidates = []string{juniorCandidate, validCandidate}
	compareJobContext = validJobContext
	compareVerbose = true

	require.NoError(t, runCompare(compareCmd, nil))
	assert.Contains(t, stderr.String(), "CANDIDATE COMPARISON")

	var result types.CandidateComparison
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "cand-file", result.Candidates[0].CandidateID)
	assert.Equal(t, "cand-junior", result.Candidates[1].CandidateID)
	require.NotNil(t, result.JobContext)
	assert.Equal(t, "fintech", result.JobContext.Industry)
}

func TestCompareCommand_Excel(t *testing.T) {
	resetCompareFlags(t)
	stdout, _ := capture(t, compareCmd)

	compareCandidates = []string{validCandidate, juniorCandidate}
	compareOutput = filepath.Join(t.TempDir(), "comparison.xlsx")

	require.NoError(t, runCompare(compareCmd, nil))
	assert.Contains(t, stdout.String(), "Compared 2 candidates")

	f, err := excelize.OpenFile(compareOutput)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.SheetSummary, export.SheetRanked, export.SheetInsights}, f.GetSheetList())
}

func TestCompareCommand_BadConfig(t *testing.T) {
	resetCompareFlags(t)
	capture(t, compareCmd)

	compareCandidates = []string{validCandidate}
	compareConfig = writeFile(t, t.TempDir(), "config.json", `{"criteria": {"technical_skills": 0.9}}`)

	err := runCompare(compareCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "criteria")
}

func stageDraft(stage string, score float64) string {
	s := strings.NewReplacer("STAGE", stage, "SCORE", jsonNumber(score))
	return s.Replace(`{
  "candidate_id": "cand-file",
  "job_category": "backend",
  "stage_id": "STAGE",
  "ksa_scores": { "knowledge": SCORE, "skills": SCORE, "ability": SCORE },
  "attribute_scores": {
    "technical_skills": SCORE, "communication": SCORE, "problem_solving": SCORE,
    "leadership": SCORE, "adaptability": SCORE
  },
  "strengths": ["Clear trade-off reasoning"]
}`)
}

func jsonNumber(v float64) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func resetReportFlags(t *testing.T) {
	t.Cleanup(func() {
		reportStages = nil
		reportConfig, reportOutput = "", ""
		reportVerbose = false
	})
}

func TestReportCommand(t *testing.T) {
	resetReportFlags(t)
	stdout, stderr := capture(t, reportCmd)
	dir := t.TempDir()

	reportStages = []string{
		writeFile(t, dir, "stage1.json", stageDraft("stage-1", 6)),
		writeFile(t, dir, "stage2.json", stageDraft("stage-2", 8)),
		writeFile(t, dir, "stage3.json", stageDraft("stage-3", 6)),
	}
	reportVerbose = true

	require.NoError(t, runReport(reportCmd, nil))
	assert.Contains(t, stderr.String(), "MULTI-STAGE REPORT")

	var r types.MultiStageEvaluationReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &r))
	assert.Equal(t, "cand-file", r.CandidateID)
	assert.Equal(t, 3, r.CompletedStages)
	assert.True(t, r.IsComplete)
	assert.InDelta(t, 7.0, r.FinalScore, 1e-9)
	assert.Equal(t, types.RecommendationRecommend, r.FinalRecommendation)
}

func TestReportCommand_PartialToFile(t *testing.T) {
	resetReportFlags(t)
	stdout, _ := capture(t, reportCmd)

	reportStages = []string{validStage2}
	reportOutput = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, runReport(reportCmd, nil))
	assert.Contains(t, stdout.String(), "written to")

	data, err := os.ReadFile(reportOutput)
	require.NoError(t, err)
	var r types.MultiStageEvaluationReport
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, 1, r.CompletedStages)
	assert.False(t, r.IsComplete)
	require.NotNil(t, r.StageScores.Stage2)
	assert.Equal(t, "Morgan Panel", r.StageScores.Stage2.EvaluatorName)
}

func TestReportCommand_Excel(t *testing.T) {
	resetReportFlags(t)
	capture(t, reportCmd)

	reportStages = []string{validStage2}
	reportOutput = filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, runReport(reportCmd, nil))
	f, err := excelize.OpenFile(reportOutput)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.SheetSummary, export.SheetProgression, export.SheetStages}, f.GetSheetList())
}

func TestReportCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	other := strings.Replace(stageDraft("stage-3", 7), `"cand-file"`, `"cand-other"`, 1)

	tests := []struct {
		name   string
		stages []string
		want   string
	}{
		{"mixed candidates", []string{
			writeFile(t, dir, "a.json", stageDraft("stage-1", 6)),
			writeFile(t, dir, "b.json", other),
		}, "expected cand-file/backend"},
		{"duplicate stage", []string{
			writeFile(t, dir, "c.json", stageDraft("stage-1", 6)),
			writeFile(t, dir, "d.json", stageDraft("stage-1", 7)),
		}, "given twice"},
		{"score out of range", []string{
			filepath.Join("..", "..", "testdata", "invalid", "stage_score_range.json"),
		}, "invalid stage score"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetReportFlags(t)
			capture(t, reportCmd)
			reportStages = tt.stages

			err := runReport(reportCmd, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateFrameworkCommand(t *testing.T) {
	t.Cleanup(func() { validateFrameworkPath = "" })

	stdout, _ := capture(t, validateFrameworkCmd)
	validateFrameworkPath = validFramework
	require.NoError(t, runValidateFramework(validateFrameworkCmd, nil))
	assert.Contains(t, stdout.String(), "FRAMEWORK VALID")

	stdout.Reset()
	validateFrameworkPath = weightingSumFramework
	err := runValidateFramework(validateFrameworkCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, stdout.String(), "FRAMEWORK INVALID")
}

func TestSchemaDirOverride(t *testing.T) {
	t.Cleanup(func() { validateFrameworkPath, schemaDir = "", "" })
	stdout, _ := capture(t, validateFrameworkCmd)

	schemaDir = t.TempDir()
	writeFile(t, schemaDir, "ksa_framework.schema.json",
		`{"type": "object", "required": ["approved_by"]}`)
	validateFrameworkPath = validFramework

	err := runValidateFramework(validateFrameworkCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approved_by")
	assert.Contains(t, stdout.String(), "FRAMEWORK INVALID")

	// schemas missing from the directory come from the bundled set
	resetEvaluateFlags(t)
	capture(t, evaluateCmd)
	evaluateCandidate = validCandidate
	evaluateFramework = validFramework
	evaluateOutput = filepath.Join(t.TempDir(), "evaluation.json")
	err = runEvaluate(evaluateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid framework")

	schemaDir = filepath.Join(t.TempDir(), "missing")
	err = runValidateFramework(validateFrameworkCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --schema-dir")
}

func TestMigrateCommand_Print(t *testing.T) {
	t.Cleanup(func() { migratePrint = false })

	stdout, _ := capture(t, migrateCmd)
	migratePrint = true
	require.NoError(t, runMigrate(migrateCmd, nil))
	assert.Contains(t, stdout.String(), "CREATE TABLE IF NOT EXISTS stage_scores")
}

func TestMigrateCommand_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	capture(t, migrateCmd)

	err := runMigrate(migrateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestIssueTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("JWT_ISSUER", "")
	t.Cleanup(func() { issueTokenEvaluatorID, issueTokenName = "", "" })

	stdout, _ := capture(t, issueTokenCmd)
	issueTokenEvaluatorID = "eval-7"
	issueTokenName = "Sam Panel"
	require.NoError(t, runIssueToken(issueTokenCmd, nil))

	cfg, err := config.NewJWTConfig()
	require.NoError(t, err)
	claims, err := server.NewJWTService(cfg).ValidateToken(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, "eval-7", claims.EvaluatorID)
	assert.Equal(t, "Sam Panel", claims.EvaluatorName)
}

func TestIssueTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	capture(t, issueTokenCmd)

	err := runIssueToken(issueTokenCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "evaluate", "compare", "report", "validate-framework", "migrate", "issue-token"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("schema-dir"))
}
