package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/jonathan/ksa-evaluator/internal/export"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CompareRequest is the body of POST /comparisons and POST /comparisons/export
type CompareRequest struct {
	CandidateIDs []string                 `json:"candidate_ids" validate:"required,min=1,max=200,dive,required"`
	JobContext   *types.JobContext        `json:"job_context,omitempty"`
	Criteria     *types.CriteriaOverrides `json:"criteria,omitempty"`
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) (*types.CandidateComparison, bool) {
	var req CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	if err := types.ValidateStruct(req); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	result, err := s.service.Compare(r.Context(), req.CandidateIDs, req.JobContext, req.Criteria)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return result, true
}

// handleCompare ranks a set of candidates
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	result, ok := s.compare(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, r, http.StatusOK, result)
}

// handleCompareExport ranks a set of candidates and returns the workbook
func (s *Server) handleCompareExport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.compare(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteComparisonExcel(result, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.attachment(w, r, "candidate_comparison.xlsx", xlsxContentType, buf.Bytes())
}

// attachment writes body as a downloadable file
func (s *Server) attachment(w http.ResponseWriter, r *http.Request, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.WarnContext(r.Context(), "failed to write attachment")
	}
}
