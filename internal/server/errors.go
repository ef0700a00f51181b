// Package server provides the HTTP REST API for the KSA candidate evaluator.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/ksa-evaluator/internal/pipeline"
	"github.com/jonathan/ksa-evaluator/internal/schemas"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/weights"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// FieldError is one entry of an error response's details list
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body written for failed requests
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *pipeline.NotFoundError
		transition  *stages.TransitionError
		invalid     *ErrValidation
		sumErr      *weights.SumError
		negErr      *weights.NegativeError
		schemaErr   *schemas.ValidationError
		fieldErrors validator.ValidationErrors
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &transition):
		return http.StatusConflict
	case errors.As(err, &invalid),
		errors.As(err, &sumErr),
		errors.As(err, &negErr),
		errors.As(err, &schemaErr),
		errors.As(err, &fieldErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the response body for err. Server errors hide their
// cause behind a generic message.
func NewErrorResponse(err error) ErrorResponse {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return ErrorResponse{Error: "internal server error"}
	}

	resp := ErrorResponse{Error: err.Error()}

	var schemaErr *schemas.ValidationError
	var fieldErrors validator.ValidationErrors
	switch {
	case errors.As(err, &schemaErr):
		resp.Error = "schema validation failed"
		for _, fe := range schemaErr.Errors {
			resp.Details = append(resp.Details, FieldError{Field: fe.Field, Message: fe.Message})
		}
	case errors.As(err, &fieldErrors):
		resp.Error = "validation failed"
		for _, fe := range fieldErrors {
			resp.Details = append(resp.Details, FieldError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			})
		}
	}
	return resp
}
