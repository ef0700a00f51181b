package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jonathan/ksa-evaluator/internal/pipeline"
	"github.com/jonathan/ksa-evaluator/internal/schemas"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// EvaluateRequest is the body of POST /candidates/{id}/evaluations
type EvaluateRequest struct {
	Framework json.RawMessage         `json:"framework"`
	Context   types.EvaluationContext `json:"context"`
}

// BatchEvaluateRequest is the body of POST /evaluations/batch/stream
type BatchEvaluateRequest struct {
	CandidateIDs []string                `json:"candidate_ids" validate:"required,min=1,max=100,dive,required"`
	Framework    json.RawMessage         `json:"framework"`
	Context      types.EvaluationContext `json:"context"`
}

// BatchResult is the payload of the batch stream's complete event
type BatchResult struct {
	Evaluations []types.CandidateEvaluation `json:"evaluations"`
}

// parseFramework validates a raw framework document against its schema and weighting rules
func parseFramework(raw json.RawMessage) (*types.KSAFramework, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &ErrValidation{Field: "framework", Message: "is required"}
	}
	return schemas.ValidateFramework(raw)
}

// handleCreateCandidate stores a new candidate profile
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var profile types.CandidateProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.service.CreateCandidate(r.Context(), &profile); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusCreated, profile)
}

// handleListCandidates returns every candidate profile
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.service.ListCandidates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, map[string]any{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// handleGetCandidate returns one candidate profile
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	profile, err := s.service.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, profile)
}

// handleEvaluateCandidate scores one candidate against a KSA framework
func (s *Server) handleEvaluateCandidate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	framework, err := parseFramework(req.Framework)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	evaluation, err := s.service.EvaluateCandidate(r.Context(), r.PathValue("id"), framework, s.evaluationContext(r, req.Context))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusCreated, evaluation)
}

// handleListEvaluations returns a candidate's stored evaluations, newest first
func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	evaluations, err := s.service.ListEvaluations(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, map[string]any{
		"evaluations": evaluations,
		"count":       len(evaluations),
	})
}

// handleBatchEvaluateStream evaluates many candidates and streams progress over SSE
func (s *Server) handleBatchEvaluateStream(w http.ResponseWriter, r *http.Request) {
	var req BatchEvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := types.ValidateStruct(req); err != nil {
		s.writeError(w, r, err)
		return
	}
	framework, err := parseFramework(req.Framework)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	onProgress := func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			s.logger.WarnContext(r.Context(), "failed to write progress event", slog.Any("error", err))
		}
	}

	evaluations, err := s.service.EvaluateBatch(r.Context(), req.CandidateIDs, framework, s.evaluationContext(r, req.Context), onProgress)
	if err != nil {
		if HTTPStatus(err) >= http.StatusInternalServerError {
			s.logger.ErrorContext(r.Context(), "batch evaluation failed", slog.Any("error", err))
		}
		sse.WriteError(NewErrorResponse(err).Error)
		return
	}
	sse.WriteComplete(BatchResult{Evaluations: evaluations})
}
