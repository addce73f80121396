package auth

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"docit/internal/domain"
	"docit/internal/domain/models"
)

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client *fbauth.Client
	logger *slog.Logger
}

// FirebaseAdmin implements IdentityAdmin with the Firebase admin SDK.
type FirebaseAdmin struct {
	client *fbauth.Client
}

var (
	_ TokenVerifier = (*FirebaseVerifier)(nil)
	_ IdentityAdmin = (*FirebaseAdmin)(nil)
)

// NewFirebaseAuth opens the auth client of app and returns both the
// verifier and the admin built on it.
func NewFirebaseAuth(ctx context.Context, app *firebase.App, logger *slog.Logger) (*FirebaseVerifier, *FirebaseAdmin, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("init firebase auth: %w", err)
	}
	logger.Info("firebase auth initialized")
	return &FirebaseVerifier{client: client, logger: logger}, &FirebaseAdmin{client: client}, nil
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, tokenString string) (*models.Session, error) {
	token, err := v.client.VerifyIDToken(ctx, tokenString)
	if err != nil {
		v.logger.Debug("firebase token rejected", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}
	return sessionFromFirebaseClaims(token.UID, token.Claims), nil
}

func sessionFromFirebaseClaims(uid string, claims map[string]interface{}) *models.Session {
	session := &models.Session{UserID: uid}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		session.EmailVerified = verified
	}
	return session
}

func (v *FirebaseVerifier) Close() error {
	return nil
}

func (a *FirebaseAdmin) DeleteUser(ctx context.Context, userID string) error {
	if err := a.client.DeleteUser(ctx, userID); err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil
		}
		return fmt.Errorf("delete firebase user: %w", err)
	}
	return nil
}

func (a *FirebaseAdmin) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := a.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("generate password reset link: %w", err)
	}
	return link, nil
}

func (a *FirebaseAdmin) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	link, err := a.client.EmailVerificationLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("generate email verification link: %w", err)
	}
	return link, nil
}
