// Package account backs the dashboard: profile, identity links and
// account deletion.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docit/internal/auth"
	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
	llmRepo "docit/internal/domain/repositories/llm"
	"docit/internal/domain/services"
)

type accountService struct {
	users       repositories.UserRepository
	folders     services.FolderService
	transcripts llmRepo.TranscriptStore
	admin       auth.IdentityAdmin
	logger      *slog.Logger
}

// NewAccountService creates a new account service. Folders are deleted
// through the folder service so cascades and change events match a
// manual delete.
func NewAccountService(
	users repositories.UserRepository,
	folders services.FolderService,
	transcripts llmRepo.TranscriptStore,
	admin auth.IdentityAdmin,
	logger *slog.Logger,
) services.AccountService {
	return &accountService{
		users:       users,
		folders:     folders,
		transcripts: transcripts,
		admin:       admin,
		logger:      logger,
	}
}

// GetAccount returns the session plus the stored profile, if any
func (s *accountService) GetAccount(ctx context.Context, session *models.Session) (*models.Account, error) {
	account := &models.Account{Session: *session}

	profile, err := s.users.GetProfile(ctx, session.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	account.Profile = profile
	return account, nil
}

// UpdateProfile stores the registration names
func (s *accountService) UpdateProfile(ctx context.Context, session *models.Session, req *services.UpdateProfileRequest) (*models.Profile, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.FirstName, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&req.LastName, validation.Required, validation.RuneLength(1, 100)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile := &models.Profile{
		UserID:       session.UserID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        session.Email,
		DateModified: time.Now(),
	}
	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", session.UserID)
	return profile, nil
}

// SendPasswordReset generates a password reset link for the session's email
func (s *accountService) SendPasswordReset(ctx context.Context, session *models.Session) (*services.ActionLink, error) {
	if session.Email == "" {
		return nil, &domain.ValidationError{Message: "account has no email address"}
	}

	link, err := s.admin.PasswordResetLink(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("password reset link: %w", err)
	}

	s.logger.Info("password reset link issued", "user_id", session.UserID)
	return &services.ActionLink{Link: link}, nil
}

// SendEmailVerification generates a verification link. Already verified
// accounts are refused.
func (s *accountService) SendEmailVerification(ctx context.Context, session *models.Session) (*services.ActionLink, error) {
	if session.EmailVerified {
		return nil, &domain.ConflictError{
			Message:      "email address already verified",
			ResourceType: "account",
			ResourceID:   session.UserID,
		}
	}
	if session.Email == "" {
		return nil, &domain.ValidationError{Message: "account has no email address"}
	}

	link, err := s.admin.EmailVerificationLink(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("email verification link: %w", err)
	}

	s.logger.Info("email verification link issued", "user_id", session.UserID)
	return &services.ActionLink{Link: link}, nil
}

// DeleteAccount removes folders (with their lists and items), the
// profile, the chat transcript and finally the identity. A failure stops
// before the identity is deleted so the user can retry.
func (s *accountService) DeleteAccount(ctx context.Context, session *models.Session) error {
	userID := session.UserID

	listing, err := s.folders.ListFolders(ctx, userID)
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}
	for _, folder := range listing.Folders {
		path := models.FolderPath{UserID: userID, FolderID: folder.ID}
		if err := s.folders.DeleteFolder(ctx, path); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete folder %s: %w", folder.ID, err)
		}
	}

	if err := s.users.DeleteProfile(ctx, userID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete profile: %w", err)
	}

	if err := s.transcripts.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear transcript: %w", err)
	}

	if err := s.admin.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}

	s.logger.Info("account deleted", "user_id", userID, "folders", len(listing.Folders))
	return nil
}
