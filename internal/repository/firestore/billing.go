package firestore

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// BillingRepository reads and writes the payments extension's documents
type BillingRepository struct {
	*Store
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(store *Store) *BillingRepository {
	return &BillingRepository{Store: store}
}

var (
	_ repositories.BillingRepository = (*BillingRepository)(nil)
	_ repositories.CheckoutWatcher   = (*BillingRepository)(nil)
)

func (r *BillingRepository) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	snaps, err := r.client.Collection(productsCollection).Where("active", "==", true).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := []models.Product{}
	for _, snap := range snaps {
		var p models.Product
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", snap.Ref.ID, err)
		}
		p.ID = snap.Ref.ID

		priceSnaps, err := snap.Ref.Collection(pricesCollection).Where("active", "==", true).Documents(ctx).GetAll()
		if err != nil {
			return nil, fmt.Errorf("list prices of %s: %w", p.ID, err)
		}
		for _, ps := range priceSnaps {
			var price models.Price
			if err := ps.DataTo(&price); err != nil {
				return nil, fmt.Errorf("decode price %s: %w", ps.Ref.ID, err)
			}
			price.ID = ps.Ref.ID
			price.ProductID = p.ID
			p.Prices = append(p.Prices, price)
		}
		if len(p.Prices) == 0 {
			continue
		}
		sort.Slice(p.Prices, func(i, j int) bool { return p.Prices[i].UnitAmount < p.Prices[j].UnitAmount })
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *BillingRepository) UpsertProduct(ctx context.Context, product *models.Product) error {
	ref := r.client.Collection(productsCollection).Doc(product.ID)
	if _, err := ref.Set(ctx, product); err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	for _, price := range product.Prices {
		if _, err := ref.Collection(pricesCollection).Doc(price.ID).Set(ctx, price); err != nil {
			return fmt.Errorf("upsert price %s: %w", price.ID, err)
		}
	}
	return nil
}

func (r *BillingRepository) CreateCheckoutSession(ctx context.Context, session *models.CheckoutSession) error {
	ref, _, err := r.customer(session.UserID).Collection(checkoutSessionsCollection).Add(ctx, map[string]interface{}{
		"price":       session.PriceID,
		"success_url": session.SuccessURL,
		"cancel_url":  session.CancelURL,
		"created":     firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("create checkout session: %w", err)
	}
	session.ID = ref.ID
	return nil
}

func (r *BillingRepository) sessionRef(userID, sessionID string) *firestore.DocumentRef {
	return r.customer(userID).Collection(checkoutSessionsCollection).Doc(sessionID)
}

func (r *BillingRepository) GetCheckoutSession(ctx context.Context, userID, sessionID string) (*models.CheckoutSession, error) {
	snap, err := r.sessionRef(userID, sessionID).Get(ctx)
	if err != nil {
		return nil, wrapGetError(err, "checkout session", sessionID)
	}
	return checkoutFromSnapshot(snap, userID)
}

// checkoutFromSnapshot reads error.message, which the extension writes as a map
func checkoutFromSnapshot(snap *firestore.DocumentSnapshot, userID string) (*models.CheckoutSession, error) {
	var s models.CheckoutSession
	if err := snap.DataTo(&s); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	s.ID = snap.Ref.ID
	s.UserID = userID
	if v, err := snap.DataAt("error.message"); err == nil {
		if msg, ok := v.(string); ok {
			s.Error = msg
		}
	}
	return &s, nil
}

func (r *BillingRepository) ResolveCheckoutSession(ctx context.Context, userID, sessionID, url, errMsg string) error {
	updates := []firestore.Update{{Path: "url", Value: url}}
	if errMsg != "" {
		updates = append(updates, firestore.Update{Path: "error", Value: map[string]interface{}{"message": errMsg}})
	}
	if _, err := r.sessionRef(userID, sessionID).Update(ctx, updates); err != nil {
		return wrapWriteError(err, "resolve", "checkout session", sessionID)
	}
	return nil
}

// WatchCheckoutSession listens on the session document until the extension
// writes url or error.
func (r *BillingRepository) WatchCheckoutSession(ctx context.Context, userID, sessionID string) (*models.CheckoutSession, error) {
	it := r.sessionRef(userID, sessionID).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, wrapGetError(err, "checkout session", sessionID)
		}
		if !snap.Exists() {
			continue
		}
		session, err := checkoutFromSnapshot(snap, userID)
		if err != nil {
			return nil, err
		}
		if session.Resolved() {
			return session, nil
		}
	}
}

func (r *BillingRepository) ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error) {
	snaps, err := r.customer(userID).Collection(subscriptionsCollection).
		OrderBy("created", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	subs := []models.Subscription{}
	for _, snap := range snaps {
		var s models.Subscription
		if err := snap.DataTo(&s); err != nil {
			return nil, fmt.Errorf("decode subscription %s: %w", snap.Ref.ID, err)
		}
		s.ID = snap.Ref.ID
		s.PriceID = refID(snap, "price")
		s.ProductID = refID(snap, "product")
		subs = append(subs, s)
	}
	return subs, nil
}

// refID reads a field the extension stores as a document reference
func refID(snap *firestore.DocumentSnapshot, field string) string {
	v, err := snap.DataAt(field)
	if err != nil {
		return ""
	}
	switch ref := v.(type) {
	case *firestore.DocumentRef:
		return ref.ID
	case string:
		return ref
	}
	return ""
}
