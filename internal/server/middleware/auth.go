// Package middleware provides HTTP middleware for evaluator authentication.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// evaluatorKey is the context key for storing the authenticated evaluator.
const evaluatorKey ContextKey = "evaluator"

// Evaluator identifies the person behind a bearer token.
type Evaluator struct {
	ID   string
	Name string
}

// TokenValidator is an interface for validating bearer tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (EvaluatorGetter, error)
}

// EvaluatorGetter is an interface for extracting the evaluator from token claims.
type EvaluatorGetter interface {
	GetEvaluatorID() string
	GetEvaluatorName() string
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the
// evaluator to the request context. A nil validator disables authentication.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil || claims.GetEvaluatorID() == "" {
				unauthorized(w)
				return
			}

			ctx := WithEvaluator(r.Context(), Evaluator{
				ID:   claims.GetEvaluatorID(),
				Name: claims.GetEvaluatorName(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses a case-insensitive "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

//nolint:errcheck // the status line is already written
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}

// WithEvaluator returns a copy of ctx carrying e.
func WithEvaluator(ctx context.Context, e Evaluator) context.Context {
	return context.WithValue(ctx, evaluatorKey, e)
}

// GetEvaluator extracts the authenticated evaluator from the request context.
func GetEvaluator(r *http.Request) (Evaluator, bool) {
	e, ok := r.Context().Value(evaluatorKey).(Evaluator)
	return e, ok
}
