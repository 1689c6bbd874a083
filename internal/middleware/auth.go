package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"chms-be/internal/domain"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserContextKey is the key for the authenticated user's claims
	UserContextKey ContextKey = "user"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// TokenValidator validates an access token into auth claims
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.AuthClaims, error)
}

// Auth creates an authentication middleware
func Auth(validator TokenValidator, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, apperrors.NewAuthenticationError("Authorization header is required"), log)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, apperrors.NewAuthenticationError("Invalid authorization header format"), log)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeErrorResponse(w, apperrors.NewAuthenticationError("Token is required"), log)
				return
			}

			ctx := r.Context()
			claims, err := validator.ValidateToken(ctx, token)
			if err != nil {
				log.WithError(err).Debug("Token validation failed")
				writeErrorResponse(w, apperrors.NewAuthenticationError("Invalid or expired token"), log)
				return
			}

			ctx = context.WithValue(ctx, UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated claims, or nil
func ClaimsFromContext(ctx context.Context) *domain.AuthClaims {
	claims, _ := ctx.Value(UserContextKey).(*domain.AuthClaims)
	return claims
}

// RequestID attaches a request id to the context and response headers
func RequestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = generateRequestID()
			}

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			w.Header().Set("X-Request-ID", requestID)

			log.WithRequestID(requestID).WithField("path", r.URL.Path).Debug("Request received")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	// crypto/rand never fails on supported platforms; an all-zero id is
	// still a usable id
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func writeErrorResponse(w http.ResponseWriter, appErr *apperrors.AppError, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := map[string]interface{}{
		"error": map[string]interface{}{
			"type":      appErr.Type,
			"message":   appErr.Message,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("Failed to encode error response")
	}
}
