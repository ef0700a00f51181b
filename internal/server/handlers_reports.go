package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/jonathan/ksa-evaluator/internal/export"
	"github.com/jonathan/ksa-evaluator/internal/types"
)

// Report export formats
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// handleListReports returns every report stored for a candidate
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.service.ListReports(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}

// handleGetReport returns the stored report for a candidate and job category
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.GetReport(r.Context(), r.PathValue("id"), r.PathValue("category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, report)
}

// handleRegenerateReport rebuilds the report from the current stage scores
func (s *Server) handleRegenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.RegenerateReport(r.Context(), r.PathValue("id"), r.PathValue("category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, report)
}

// handleExportReport downloads the stored report as JSON or XLSX
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatXLSX {
		s.writeError(w, r, &ErrValidation{Field: "format", Message: "must be json or xlsx"})
		return
	}

	report, err := s.service.GetReport(r.Context(), r.PathValue("id"), r.PathValue("category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	contentType := "application/json"
	if format == FormatXLSX {
		contentType = xlsxContentType
		err = export.WriteReportExcel(report, &buf)
	} else {
		err = export.WriteJSON(&buf, report)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.attachment(w, r, reportFilename(report, format), contentType, buf.Bytes())
}

func reportFilename(r *types.MultiStageEvaluationReport, format string) string {
	return fmt.Sprintf("report_%s_%s.%s", r.CandidateID, r.JobCategory, format)
}
