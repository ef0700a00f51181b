package server

import (
	"io"
	"net/http"

	"github.com/jonathan/ksa-evaluator/internal/schemas"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// FrameworkValidationResponse is returned for a framework that passed every check
type FrameworkValidationResponse struct {
	Valid     bool                `json:"valid"`
	Framework *types.KSAFramework `json:"framework"`
}

// handleValidateFramework checks a KSA framework document without storing it
func (s *Server) handleValidateFramework(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	framework, err := schemas.ValidateFramework(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, FrameworkValidationResponse{Valid: true, Framework: framework})
}
