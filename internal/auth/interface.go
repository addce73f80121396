package auth

import (
	"context"

	"docit/internal/domain/models"
)

// TokenVerifier defines the interface for ID token verification.
// This abstraction keeps the middleware agnostic to the identity provider.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the caller's session.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, or has an invalid signature.
	VerifyToken(ctx context.Context, tokenString string) (*models.Session, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}

// IdentityAdmin performs privileged account operations against the
// identity provider. Sign-in flows stay in the provider's client SDK.
type IdentityAdmin interface {
	DeleteUser(ctx context.Context, userID string) error

	// PasswordResetLink returns a link the user can follow to set a new password
	PasswordResetLink(ctx context.Context, email string) (string, error)

	// EmailVerificationLink returns a link that marks the address verified
	EmailVerificationLink(ctx context.Context, email string) (string, error)
}
