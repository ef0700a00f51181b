package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/ksa-evaluator/internal/server/middleware"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// ReviewRequest is the optional body of POST /stage-scores/{id}/review
type ReviewRequest struct {
	Reviewer string `json:"reviewer"`
}

// evaluationContext fills the evaluator from the bearer token when the body leaves it empty
func (s *Server) evaluationContext(r *http.Request, evalCtx types.EvaluationContext) types.EvaluationContext {
	if evalCtx.Evaluator != "" {
		return evalCtx
	}
	if e, ok := middleware.GetEvaluator(r); ok {
		evalCtx.Evaluator = e.Name
		if evalCtx.Evaluator == "" {
			evalCtx.Evaluator = e.ID
		}
	}
	return evalCtx
}

// handleStartStage opens a draft stage score. An authenticated evaluator
// always replaces the evaluator named in the body.
func (s *Server) handleStartStage(w http.ResponseWriter, r *http.Request) {
	var in stages.DraftInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	in.CandidateID = r.PathValue("id")
	if e, ok := middleware.GetEvaluator(r); ok {
		in.EvaluatorID = e.ID
		in.EvaluatorName = e.Name
	}

	score, err := s.service.StartStage(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusCreated, score)
}

// handleListStageScores returns a candidate's stage scores
func (s *Server) handleListStageScores(w http.ResponseWriter, r *http.Request) {
	scores, err := s.service.ListStageScores(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, map[string]any{
		"stage_scores": scores,
		"count":        len(scores),
	})
}

// handleGetStageScore returns one stage score
func (s *Server) handleGetStageScore(w http.ResponseWriter, r *http.Request) {
	score, err := s.service.GetStageScore(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, score)
}

// handleUpdateStage patches a draft stage score
func (s *Server) handleUpdateStage(w http.ResponseWriter, r *http.Request) {
	var patch stages.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	score, err := s.service.UpdateStage(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, score)
}

// handleCompleteStage freezes a draft and reports the generated report, if any
func (s *Server) handleCompleteStage(w http.ResponseWriter, r *http.Request) {
	completion, err := s.service.CompleteStage(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, completion)
}

// handleReviewStage marks a completed stage as reviewed
func (s *Server) handleReviewStage(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil && !emptyBody(err) {
		s.writeError(w, r, err)
		return
	}
	reviewer := req.Reviewer
	if e, ok := middleware.GetEvaluator(r); ok {
		reviewer = e.ID
	}
	if reviewer == "" {
		s.writeError(w, r, &ErrValidation{Field: "reviewer", Message: "is required"})
		return
	}

	score, err := s.service.ReviewStage(r.Context(), r.PathValue("id"), reviewer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, score)
}

// emptyBody reports whether decodeJSON failed only because no body was sent
func emptyBody(err error) bool {
	var v *ErrValidation
	return errors.As(err, &v) && v.Message == io.EOF.Error()
}
