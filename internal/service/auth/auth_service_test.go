package auth

import (
	"context"
	"testing"
	"time"

	"chms-be/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestService(t *testing.T) *Service {
	log, err := logger.New("error")
	require.NoError(t, err)
	return NewService(testSecret, log)
}

func TestValidateToken_ValidToken(t *testing.T) {
	svc := newTestService(t)

	token := signToken(t, jwt.MapClaims{
		"sub":       "user-123",
		"email":     "anna@example.com",
		"role":      "authenticated",
		"aud":       "authenticated",
		"church_id": "church-1",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Sub)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.Equal(t, "authenticated", claims.Aud)
	assert.Equal(t, "church-1", claims.ChurchID)
	assert.NotZero(t, claims.Exp)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "Wrong secret",
			token: signToken(t, jwt.MapClaims{
				"sub": "user-123",
				"aud": "authenticated",
				"exp": time.Now().Add(time.Hour).Unix(),
			}, "other-secret"),
		},
		{
			name: "Expired token",
			token: signToken(t, jwt.MapClaims{
				"sub": "user-123",
				"aud": "authenticated",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}, testSecret),
		},
		{
			name: "Wrong audience",
			token: signToken(t, jwt.MapClaims{
				"sub": "user-123",
				"aud": "anon",
				"exp": time.Now().Add(time.Hour).Unix(),
			}, testSecret),
		},
		{
			name: "Missing expiry",
			token: signToken(t, jwt.MapClaims{
				"sub": "user-123",
				"aud": "authenticated",
			}, testSecret),
		},
		{
			name: "Missing subject",
			token: signToken(t, jwt.MapClaims{
				"aud": "authenticated",
				"exp": time.Now().Add(time.Hour).Unix(),
			}, testSecret),
		},
		{
			name:  "Garbage token",
			token: "not.a.jwt",
		},
		{
			name:  "Empty token",
			token: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(context.Background(), tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
