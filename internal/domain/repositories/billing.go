package repositories

import (
	"context"

	"docit/internal/domain/models"
)

// BillingRepository reads and writes the documents shared with the
// payments extension: products/prices, customer checkout sessions and
// subscriptions.
type BillingRepository interface {
	// ListActiveProducts returns active products with their active prices
	ListActiveProducts(ctx context.Context) ([]models.Product, error)

	// UpsertProduct stores a product and its prices (seeding, sync)
	UpsertProduct(ctx context.Context, product *models.Product) error

	// CreateCheckoutSession writes the request document and assigns its ID
	CreateCheckoutSession(ctx context.Context, session *models.CheckoutSession) error

	GetCheckoutSession(ctx context.Context, userID, sessionID string) (*models.CheckoutSession, error)

	// ResolveCheckoutSession records the extension's answer
	ResolveCheckoutSession(ctx context.Context, userID, sessionID, url, errMsg string) error

	ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error)
}

// CheckoutWatcher is implemented by stores that can push document changes.
// WatchCheckoutSession blocks until the session is resolved or ctx ends.
type CheckoutWatcher interface {
	WatchCheckoutSession(ctx context.Context, userID, sessionID string) (*models.CheckoutSession, error)
}
