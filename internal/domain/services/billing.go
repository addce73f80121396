package services

import (
	"context"

	"docit/internal/domain/models"
)

// CreateCheckoutRequest asks the payments extension for a hosted checkout page
type CreateCheckoutRequest struct {
	UserID     string `json:"-"`
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// CheckoutResult carries the redirect URL the client navigates to
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// BillingService drives the subscription flow
type BillingService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)

	// CreateCheckout waits for the extension's answer, bounded by the
	// configured timeout
	CreateCheckout(ctx context.Context, req *CreateCheckoutRequest) (*CheckoutResult, error)

	ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error)
}
