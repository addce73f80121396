package services

import (
	"context"

	"docit/internal/domain/models"
)

// UpdateProfileRequest stores the registration profile
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ActionLink is a one-time identity provider link (password reset,
// email verification) for the client to deliver
type ActionLink struct {
	Link string `json:"link"`
}

// AccountService backs the dashboard
type AccountService interface {
	GetAccount(ctx context.Context, session *models.Session) (*models.Account, error)
	UpdateProfile(ctx context.Context, session *models.Session, req *UpdateProfileRequest) (*models.Profile, error)
	SendPasswordReset(ctx context.Context, session *models.Session) (*ActionLink, error)
	SendEmailVerification(ctx context.Context, session *models.Session) (*ActionLink, error)

	// DeleteAccount removes all owned data, then the identity
	DeleteAccount(ctx context.Context, session *models.Session) error
}
