package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/ksa-evaluator/internal/config"
	"github.com/jonathan/ksa-evaluator/internal/server/middleware"
)

// Claims represents evaluator token claims.
type Claims struct {
	EvaluatorID   string `json:"evaluator_id"`
	EvaluatorName string `json:"evaluator_name,omitempty"`
	jwt.RegisteredClaims
}

// GetEvaluatorID implements middleware.EvaluatorGetter.
func (c *Claims) GetEvaluatorID() string {
	return c.EvaluatorID
}

// GetEvaluatorName implements middleware.EvaluatorGetter.
func (c *Claims) GetEvaluatorName() string {
	return c.EvaluatorName
}

// AsTokenValidator returns a TokenValidator adapter for this JWTService.
// A nil service yields a nil validator, which disables authentication.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	if s == nil {
		return nil
	}
	return &jwtServiceValidator{service: s}
}

// jwtServiceValidator adapts JWTService to middleware.TokenValidator interface.
type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.EvaluatorGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// JWTService issues and validates evaluator tokens.
type JWTService struct {
	config *config.JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// GenerateToken signs a token identifying the given evaluator.
func (s *JWTService) GenerateToken(evaluatorID, evaluatorName string) (string, error) {
	if evaluatorID == "" {
		return "", fmt.Errorf("evaluator id is required")
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		EvaluatorID:   evaluatorID,
		EvaluatorName: evaluatorName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer(),
			Subject:   evaluatorID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithIssuer(s.issuer()),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("invalid token signature: %w", err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("malformed token: %w", err)
		default:
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}

func (s *JWTService) issuer() string {
	if s.config.Issuer == "" {
		return config.DefaultJWTIssuer
	}
	return s.config.Issuer
}
