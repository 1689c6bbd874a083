package auth

import (
	"context"
	"fmt"

	"chms-be/internal/domain"
	"chms-be/pkg/apperrors"
	"chms-be/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// Service validates Supabase-issued access tokens. Supabase signs user
// tokens with the project JWT secret using HS256 and audience
// "authenticated".
type Service struct {
	jwtSecret []byte
	logger    *logger.Logger
}

// NewService creates a new auth service
func NewService(jwtSecret string, log *logger.Logger) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		logger:    log,
	}
}

// ValidateToken parses and verifies an access token and returns its claims
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithAudience("authenticated"), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperrors.NewAuthenticationError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.NewAuthenticationError("Invalid token claims")
	}

	authClaims := &domain.AuthClaims{
		Sub:      stringClaim(claims, "sub"),
		Email:    stringClaim(claims, "email"),
		Role:     stringClaim(claims, "role"),
		Aud:      stringClaim(claims, "aud"),
		ChurchID: stringClaim(claims, "church_id"),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		authClaims.Exp = exp.Unix()
	}

	if authClaims.Sub == "" {
		return nil, apperrors.NewAuthenticationError("Token has no subject")
	}

	return authClaims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
