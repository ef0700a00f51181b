package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ksa-evaluator/internal/pipeline"
	"github.com/jonathan/ksa-evaluator/internal/schemas"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/types"
	"github.com/jonathan/ksa-evaluator/internal/weights"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "format", Message: "must be json or xlsx"}
	assert.Equal(t, "validation error: format - must be json or xlsx", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	structErr := types.ValidateStruct(stages.DraftInput{})
	require.Error(t, structErr)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &pipeline.NotFoundError{Kind: "candidate", ID: "x"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("outer: %w", &pipeline.NotFoundError{Kind: "report", ID: "y"}), http.StatusNotFound},
		{"transition", &stages.TransitionError{ScoreID: "s", From: types.StageStatusCompleted, To: types.StageStatusDraft}, http.StatusConflict},
		{"sum", &weights.SumError{Name: "criteria", Sum: 1.2, Target: 1}, http.StatusBadRequest},
		{"negative", &weights.NegativeError{Name: "criteria", Key: "experience", Value: -1}, http.StatusBadRequest},
		{"schema", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "job_title", Message: "required"}}}, http.StatusBadRequest},
		{"struct", structErr, http.StatusBadRequest},
		{"other", errors.New("database is down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	t.Run("internal errors are hidden", func(t *testing.T) {
		resp := NewErrorResponse(errors.New("password=hunter2"))
		assert.Equal(t, "internal server error", resp.Error)
		assert.Empty(t, resp.Details)
	})

	t.Run("schema errors list fields", func(t *testing.T) {
		resp := NewErrorResponse(&schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "company_values.values", Message: "Must have at least 2 properties"},
		}})
		assert.Equal(t, "schema validation failed", resp.Error)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "company_values.values", resp.Details[0].Field)
	})

	t.Run("struct errors list namespaces", func(t *testing.T) {
		resp := NewErrorResponse(types.ValidateStruct(stages.DraftInput{}))
		assert.Equal(t, "validation failed", resp.Error)
		require.NotEmpty(t, resp.Details)
		assert.Contains(t, resp.Details[0].Field, "DraftInput.")
	})

	t.Run("not found keeps message", func(t *testing.T) {
		resp := NewErrorResponse(&pipeline.NotFoundError{Kind: "candidate", ID: "ghost"})
		assert.Equal(t, "candidate not found: ghost", resp.Error)
	})
}
