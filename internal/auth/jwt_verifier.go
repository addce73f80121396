package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"docit/internal/domain"
	"docit/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// SupabaseJWTVerifier implements TokenVerifier using JWKS from Supabase.
type SupabaseJWTVerifier struct {
	keyFunc jwt.Keyfunc
	logger  *slog.Logger
}

// NewJWTVerifier creates a new JWT verifier that fetches public keys from Supabase's JWKS endpoint.
// The JWKS keys are cached and automatically refreshed based on HTTP cache headers.
func NewJWTVerifier(ctx context.Context, jwksURL string, logger *slog.Logger) (*SupabaseJWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	return NewJWTVerifierWithKeyfunc(jwks.Keyfunc, logger), nil
}

// NewJWTVerifierWithKeyfunc builds a verifier around a fixed key lookup.
func NewJWTVerifierWithKeyfunc(keyFunc jwt.Keyfunc, logger *slog.Logger) *SupabaseJWTVerifier {
	return &SupabaseJWTVerifier{keyFunc: keyFunc, logger: logger}
}

// VerifyToken validates a JWT token and maps Supabase claims to a session.
func (v *SupabaseJWTVerifier) VerifyToken(_ context.Context, tokenString string) (*models.Session, error) {
	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	token, err := jwt.ParseWithClaims(tokenString, &models.SupabaseClaims{}, v.keyFunc,
		jwt.WithValidMethods([]string{"RS256", "ES256"}))
	if err != nil {
		v.logger.Debug("token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		v.logger.Debug("token is invalid after parsing")
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.SupabaseClaims)
	if !ok {
		v.logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	// Validate user ID exists (sub claim)
	if claims.Subject == "" {
		v.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	// Validate role is "authenticated" (reject anonymous tokens)
	if claims.Role != "authenticated" {
		v.logger.Warn("token has invalid role",
			"role", claims.Role,
			"expected", "authenticated",
			"user_id", claims.Subject)
		return nil, domain.ErrUnauthorized
	}

	return claims.Session(), nil
}

// Close is a no-op; keyfunc v3 manages its own refresh goroutine lifetime
// through the context passed to NewJWTVerifier.
func (v *SupabaseJWTVerifier) Close() error {
	v.logger.Info("JWT verifier closed")
	return nil
}
