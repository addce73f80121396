// Package billing drives the subscription checkout handshake with the
// payments extension.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
	"docit/internal/domain/services"
)

// Config bounds the wait for the extension's answer
type Config struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

type billingService struct {
	repo   repositories.BillingRepository
	cfg    Config
	logger *slog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(repo repositories.BillingRepository, cfg Config, logger *slog.Logger) services.BillingService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &billingService{repo: repo, cfg: cfg, logger: logger}
}

// ListProducts returns active products with their active prices
func (s *billingService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListActiveProducts(ctx)
}

// CreateCheckout writes a checkout session request and waits until the
// extension answers with a URL or an error, or the timeout passes.
func (s *billingService) CreateCheckout(ctx context.Context, req *services.CreateCheckoutRequest) (*services.CheckoutResult, error) {
	if err := s.validateCheckoutRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	session := &models.CheckoutSession{
		UserID:      req.UserID,
		PriceID:     req.PriceID,
		SuccessURL:  req.SuccessURL,
		CancelURL:   req.CancelURL,
		DateCreated: time.Now(),
	}
	if err := s.repo.CreateCheckoutSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("checkout session requested",
		"session_id", session.ID,
		"user_id", req.UserID,
		"price_id", req.PriceID,
	)

	waitCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resolved, err := s.wait(waitCtx, req.UserID, session.ID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("checkout session timed out", "session_id", session.ID, "timeout", s.cfg.Timeout.String())
			return nil, fmt.Errorf("checkout session %s: %w", session.ID, domain.ErrTimeout)
		}
		return nil, err
	}

	if resolved.Error != "" {
		s.logger.Warn("checkout session failed", "session_id", session.ID, "error", resolved.Error)
		return nil, fmt.Errorf("%w: %s", domain.ErrUnavailable, resolved.Error)
	}

	s.logger.Info("checkout session ready", "session_id", session.ID)
	return &services.CheckoutResult{SessionID: session.ID, URL: resolved.URL}, nil
}

// wait uses the store's change listener when it has one, else polls
func (s *billingService) wait(ctx context.Context, userID, sessionID string) (*models.CheckoutSession, error) {
	if watcher, ok := s.repo.(repositories.CheckoutWatcher); ok {
		return watcher.WatchCheckoutSession(ctx, userID, sessionID)
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		session, err := s.repo.GetCheckoutSession(ctx, userID, sessionID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		if session.Resolved() {
			return session, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ListSubscriptions returns the user's subscriptions, newest first
func (s *billingService) ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userID)
}

func (s *billingService) validateCheckoutRequest(req *services.CreateCheckoutRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.PriceID, validation.Required),
		validation.Field(&req.SuccessURL, validation.Required, is.URL),
		validation.Field(&req.CancelURL, validation.Required, is.URL),
	)
}
