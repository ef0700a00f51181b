package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ksa-evaluator/internal/config"
	"github.com/jonathan/ksa-evaluator/internal/export"
	"github.com/jonathan/ksa-evaluator/internal/pipeline"
	"github.com/jonathan/ksa-evaluator/internal/server/ratelimit"
	"github.com/jonathan/ksa-evaluator/internal/store"
	"github.com/jonathan/ksa-evaluator/internal/testutil"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

type testServerOptions struct {
	jwt       *config.JWTConfig
	rateLimit *ratelimit.Config
	ping      func(context.Context) error
}

func newTestServer(t *testing.T, o testServerOptions) http.Handler {
	t.Helper()
	opts := pipeline.DefaultOptions()
	opts.Concurrency = 2
	opts.Now = func() time.Time { return testutil.EvaluationDate }
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := pipeline.NewService(store.NewMemory(), opts)
	require.NoError(t, err)
	for _, p := range []*types.CandidateProfile{testutil.StrongProfile(), testutil.WeakProfile()} {
		require.NoError(t, svc.CreateCandidate(context.Background(), p))
	}

	if o.rateLimit == nil {
		o.rateLimit = &ratelimit.Config{Enabled: false}
	}
	srv, err := New(Config{
		Service:   svc,
		Logger:    opts.Logger,
		JWT:       o.jwt,
		RateLimit: o.rateLimit,
		Ping:      o.ping,
	})
	require.NoError(t, err)
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func frameworkJSON(t *testing.T) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(testutil.Framework())
	require.NoError(t, err)
	return data
}

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodGet, "/health", nil, "X-Request-ID", "req-42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])

	w = do(t, h, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealth_StorageDown(t *testing.T) {
	h := newTestServer(t, testServerOptions{ping: func(context.Context) error {
		return errors.New("connection refused")
	}})

	w := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode[map[string]string](t, w)["status"])
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodOptions, "/candidates", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCandidates(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	t.Run("create", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/candidates", map[string]any{"name": "Riley New"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created := decode[types.CandidateProfile](t, w)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, testutil.EvaluationDate, created.CreatedAt)

		w = do(t, h, http.MethodGet, "/candidates/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Riley New", decode[types.CandidateProfile](t, w).Name)
	})

	t.Run("missing name", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/candidates", map[string]any{"email": "x@example.com"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ErrorResponse](t, w)
		assert.Equal(t, "validation failed", resp.Error)
		require.NotEmpty(t, resp.Details)
		assert.Contains(t, resp.Details[0].Field, "Name")
	})

	t.Run("unknown field", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/candidates", `{"name":"A","nickname":"B"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[ErrorResponse](t, w).Error, "body")
	})

	t.Run("not found", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/candidates/ghost", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "candidate not found: ghost", decode[ErrorResponse](t, w).Error)
	})

	t.Run("list", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/candidates", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode[struct {
			Candidates []types.CandidateProfile `json:"candidates"`
			Count      int                      `json:"count"`
		}](t, w)
		assert.Equal(t, 3, body.Count)
		assert.Len(t, body.Candidates, 3)
	})
}

func TestEvaluateCandidate(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodPost, "/candidates/cand-strong/evaluations", EvaluateRequest{Framework: frameworkJSON(t)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ev := decode[types.CandidateEvaluation](t, w)
	assert.Equal(t, "cand-strong", ev.CandidateID)
	assert.Equal(t, types.RecommendationStrong, ev.OverallCompatibility.Recommendation)

	w = do(t, h, http.MethodGet, "/candidates/cand-strong/evaluations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, decode[map[string]any](t, w)["count"])
}

func TestEvaluateCandidate_Errors(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"missing framework", "/candidates/cand-strong/evaluations", map[string]any{}, http.StatusBadRequest},
		{"weighting sum", "/candidates/cand-strong/evaluations",
			EvaluateRequest{Framework: readFixture(t, "../../testdata/invalid/framework_weighting_sum.json")}, http.StatusBadRequest},
		{"schema violation", "/candidates/cand-strong/evaluations",
			EvaluateRequest{Framework: readFixture(t, "../../testdata/invalid/framework_one_value.json")}, http.StatusBadRequest},
		{"unknown candidate", "/candidates/ghost/evaluations", EvaluateRequest{Framework: frameworkJSON(t)}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

type sseEvent struct {
	name string
	data string
}

func readEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "" && current.name != "":
			events = append(events, current)
			current = sseEvent{}
		}
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestBatchEvaluateStream(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodPost, "/evaluations/batch/stream", BatchEvaluateRequest{
		CandidateIDs: []string{"cand-strong", "cand-weak"},
		Framework:    frameworkJSON(t),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	events := readEvents(t, w.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, "progress", events[0].name)
	assert.Equal(t, "progress", events[1].name)
	assert.Equal(t, "complete", events[2].name)

	var last pipeline.ProgressEvent
	require.NoError(t, json.Unmarshal([]byte(events[1].data), &last))
	assert.Equal(t, 2, last.Completed)
	assert.Equal(t, 2, last.Total)

	var result BatchResult
	require.NoError(t, json.Unmarshal([]byte(events[2].data), &result))
	require.Len(t, result.Evaluations, 2)
	assert.Equal(t, "cand-strong", result.Evaluations[0].CandidateID)
	assert.Equal(t, "cand-weak", result.Evaluations[1].CandidateID)
}

func TestBatchEvaluateStream_Failure(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodPost, "/evaluations/batch/stream", BatchEvaluateRequest{
		CandidateIDs: []string{"ghost"},
		Framework:    frameworkJSON(t),
	})
	events := readEvents(t, w.Body.String())
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, "error", last.name)
	assert.Contains(t, last.data, "ghost")
}

func TestBatchEvaluateStream_RequiresCandidates(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodPost, "/evaluations/batch/stream", BatchEvaluateRequest{Framework: frameworkJSON(t)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation failed", decode[ErrorResponse](t, w).Error)
}

func TestCompare(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodPost, "/comparisons", CompareRequest{
		CandidateIDs: []string{"cand-weak", "cand-strong"},
		JobContext:   &types.JobContext{JobTitle: "Backend Engineer", RequiredSkills: []string{"Go"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[types.CandidateComparison](t, w)
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "cand-strong", result.Candidates[0].CandidateID)
	assert.Equal(t, 1, result.Candidates[0].Rank)
	assert.Equal(t, 2, result.Candidates[1].Rank)
}

func TestCompare_Errors(t *testing.T) {
	h := newTestServer(t, testServerOptions{})
	heavy := 0.9

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"no candidates", CompareRequest{}, http.StatusBadRequest},
		{"criteria do not sum to one", CompareRequest{
			CandidateIDs: []string{"cand-strong"},
			Criteria:     &types.CriteriaOverrides{TechnicalSkills: &heavy},
		}, http.StatusBadRequest},
		{"unknown candidate", CompareRequest{CandidateIDs: []string{"cand-strong", "ghost"}}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/comparisons", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestCompareExport(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodPost, "/comparisons/export", CompareRequest{CandidateIDs: []string{"cand-strong", "cand-weak"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "candidate_comparison.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), export.SheetRanked)

	name, err := f.GetCellValue(export.SheetRanked, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Avery Strong", name)
}

func startStage(t *testing.T, h http.Handler, stage types.StageID, score float64, headers ...string) types.StageKSAScore {
	t.Helper()
	w := do(t, h, http.MethodPost, "/candidates/cand-strong/stage-scores", map[string]any{
		"job_category": "backend",
		"stage_id":     stage,
		"ksa_scores":   types.KSAStageScores{Knowledge: score, Skills: score, Ability: score},
		"attribute_scores": types.AttributeScores{
			TechnicalSkills: score, Communication: score, ProblemSolving: score, Leadership: score, Adaptability: score,
		},
		"strengths": []string{"Strong Go"},
	}, headers...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[types.StageKSAScore](t, w)
}

func completeStage(t *testing.T, h http.Handler, id string) pipeline.StageCompletion {
	t.Helper()
	w := do(t, h, http.MethodPost, "/stage-scores/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[pipeline.StageCompletion](t, w)
}

func TestStageWorkflow(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	s1 := startStage(t, h, types.Stage1, 6)
	s2 := startStage(t, h, types.Stage2, 6)
	s3 := startStage(t, h, types.Stage3, 6)
	assert.Equal(t, types.StageStatusDraft, s1.Status)
	assert.Equal(t, "cand-strong", s1.CandidateID)

	eight := types.AttributeScores{TechnicalSkills: 8, Communication: 8, ProblemSolving: 8, Leadership: 8, Adaptability: 8}
	w := do(t, h, http.MethodPut, "/stage-scores/"+s2.ID, map[string]any{"attribute_scores": eight})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, eight, decode[types.StageKSAScore](t, w).AttributeScores)

	first := completeStage(t, h, s1.ID)
	assert.Equal(t, types.StageStatusCompleted, first.Score.Status)
	assert.Equal(t, types.RecommendationConsider, first.Score.OverallRecommendation)
	assert.Nil(t, first.Report)

	w = do(t, h, http.MethodGet, "/candidates/cand-strong/reports/backend", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	completeStage(t, h, s2.ID)
	last := completeStage(t, h, s3.ID)
	require.NotNil(t, last.Report)
	assert.InDelta(t, 7.0, last.Report.FinalScore, 1e-9)
	assert.Equal(t, types.RecommendationRecommend, last.Report.FinalRecommendation)
	assert.True(t, last.Report.IsComplete)

	w = do(t, h, http.MethodGet, "/candidates/cand-strong/stage-scores", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.0, decode[map[string]any](t, w)["count"])

	t.Run("complete twice conflicts", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/stage-scores/"+s1.ID+"/complete", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("update after completion conflicts", func(t *testing.T) {
		w := do(t, h, http.MethodPut, "/stage-scores/"+s1.ID, map[string]any{"notes": "late"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("review", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/stage-scores/"+s1.ID+"/review", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, h, http.MethodPost, "/stage-scores/"+s1.ID+"/review", ReviewRequest{Reviewer: "lead"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		reviewed := decode[types.StageKSAScore](t, w)
		assert.Equal(t, types.StageStatusReviewed, reviewed.Status)
		assert.Equal(t, "lead", reviewed.ReviewedBy)
	})

	t.Run("reports", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/candidates/cand-strong/reports", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1.0, decode[map[string]any](t, w)["count"])

		w = do(t, h, http.MethodPost, "/candidates/cand-strong/reports/backend/regenerate", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		regenerated := decode[types.MultiStageEvaluationReport](t, w)
		assert.Equal(t, last.Report.ID, regenerated.ID)
		assert.InDelta(t, 7.0, regenerated.FinalScore, 1e-9)
	})

	t.Run("export json", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/candidates/cand-strong/reports/backend/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "report_cand-strong_backend.json")
		assert.Equal(t, "backend", decode[types.MultiStageEvaluationReport](t, w).JobCategory)
	})

	t.Run("export xlsx", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/candidates/cand-strong/reports/backend/export?format=xlsx", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, []string{export.SheetSummary, export.SheetProgression, export.SheetStages}, f.GetSheetList())
	})

	t.Run("export unknown format", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/candidates/cand-strong/reports/backend/export?format=pdf", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStageScore_NotFound(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/stage-scores/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/stage-scores/missing/complete", nil).Code)
}

func TestStartStage_RejectsUnknownStage(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	w := do(t, h, http.MethodPost, "/candidates/cand-strong/stage-scores", map[string]any{
		"job_category": "backend",
		"stage_id":     "stage-9",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "server-test-secret", ExpirationHours: 1, Issuer: "test-issuer"}
	h := newTestServer(t, testServerOptions{jwt: cfg})

	token, err := NewJWTService(cfg).GenerateToken("eval-1", "Sam Panel")
	require.NoError(t, err)
	bearer := []string{"Authorization", "Bearer " + token}

	t.Run("reads are public", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/candidates", nil).Code)
	})

	t.Run("writes need a token", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/candidates", map[string]any{"name": "Anon"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

		w = do(t, h, http.MethodPost, "/candidates", map[string]any{"name": "Anon"}, "Authorization", "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token evaluator is recorded", func(t *testing.T) {
		score := startStage(t, h, types.Stage1, 7, bearer...)
		assert.Equal(t, "eval-1", score.EvaluatorID)
		assert.Equal(t, "Sam Panel", score.EvaluatorName)

		w := do(t, h, http.MethodPost, "/stage-scores/"+score.ID+"/complete", nil, bearer...)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = do(t, h, http.MethodPost, "/stage-scores/"+score.ID+"/review", ReviewRequest{Reviewer: "someone-else"}, bearer...)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "eval-1", decode[types.StageKSAScore](t, w).ReviewedBy)
	})

	t.Run("evaluation context takes the token name", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/candidates/cand-weak/evaluations", EvaluateRequest{Framework: frameworkJSON(t)}, bearer...)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "Sam Panel", decode[types.CandidateEvaluation](t, w).Context.Evaluator)
	})
}

func TestValidateFramework(t *testing.T) {
	h := newTestServer(t, testServerOptions{})

	t.Run("valid", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/frameworks/validate", readFixture(t, "../../testdata/valid/ksa_framework.json"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[FrameworkValidationResponse](t, w)
		assert.True(t, resp.Valid)
		assert.Equal(t, "Backend Engineer", resp.Framework.JobTitle)
	})

	t.Run("schema violation", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/frameworks/validate", readFixture(t, "../../testdata/invalid/framework_one_value.json"))
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ErrorResponse](t, w)
		assert.Equal(t, "schema validation failed", resp.Error)
		assert.NotEmpty(t, resp.Details)
	})

	t.Run("weighting sum", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/frameworks/validate", readFixture(t, "../../testdata/invalid/framework_weighting_sum.json"))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[ErrorResponse](t, w).Error, "ksa weighting")
	})

	t.Run("malformed", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/frameworks/validate", "{ not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, testServerOptions{rateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	}})

	w := do(t, h, http.MethodGet, "/candidates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, h, http.MethodGet, "/candidates", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// health checks are never limited
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil).Code)
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
