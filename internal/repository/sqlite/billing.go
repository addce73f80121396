package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// BillingRepository implements repositories.BillingRepository
type BillingRepository struct {
	db *sql.DB
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *sql.DB) repositories.BillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.active, p.role,
		       pr.id, pr.active, pr.currency, pr.unit_amount, pr.interval
		FROM products p
		JOIN prices pr ON pr.product_id = p.id AND pr.active = 1
		WHERE p.active = 1
		ORDER BY p.name, pr.unit_amount`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	index := map[string]int{}
	for rows.Next() {
		var p models.Product
		var price models.Price
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Active, &p.Role,
			&price.ID, &price.Active, &price.Currency, &price.UnitAmount, &price.Interval); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		price.ProductID = p.ID

		i, ok := index[p.ID]
		if !ok {
			i = len(products)
			index[p.ID] = i
			products = append(products, p)
		}
		products[i].Prices = append(products[i].Prices, price)
	}
	return products, rows.Err()
}

func (r *BillingRepository) UpsertProduct(ctx context.Context, product *models.Product) error {
	executor := getExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, `
		INSERT INTO products (id, name, description, active, role) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = excluded.name, description = excluded.description,
		    active = excluded.active, role = excluded.role`,
		product.ID, product.Name, product.Description, product.Active, product.Role)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	for _, price := range product.Prices {
		_, err := executor.ExecContext(ctx, `
			INSERT INTO prices (id, product_id, active, currency, unit_amount, interval) VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE
			SET active = excluded.active, currency = excluded.currency,
			    unit_amount = excluded.unit_amount, interval = excluded.interval`,
			price.ID, product.ID, price.Active, price.Currency, price.UnitAmount, price.Interval)
		if err != nil {
			return fmt.Errorf("upsert price %s: %w", price.ID, err)
		}
	}
	return nil
}

func (r *BillingRepository) CreateCheckoutSession(ctx context.Context, session *models.CheckoutSession) error {
	session.ID = uuid.NewString()
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO checkout_sessions (id, user_id, price_id, success_url, cancel_url, created)
		VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.PriceID, session.SuccessURL, session.CancelURL, formatTime(session.DateCreated))
	if err != nil {
		return fmt.Errorf("create checkout session: %w", err)
	}
	return nil
}

func (r *BillingRepository) GetCheckoutSession(ctx context.Context, userID, sessionID string) (*models.CheckoutSession, error) {
	var (
		s       models.CheckoutSession
		created string
	)
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, user_id, price_id, success_url, cancel_url, url, error, created
		FROM checkout_sessions WHERE id = ? AND user_id = ?`, sessionID, userID,
	).Scan(&s.ID, &s.UserID, &s.PriceID, &s.SuccessURL, &s.CancelURL, &s.URL, &s.Error, &created)
	if err != nil {
		return nil, wrapGetError(err, "checkout session", sessionID)
	}
	if s.DateCreated, err = parseTime(created); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *BillingRepository) ResolveCheckoutSession(ctx context.Context, userID, sessionID, url, errMsg string) error {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"UPDATE checkout_sessions SET url = ?, error = ? WHERE id = ? AND user_id = ?",
		url, errMsg, sessionID, userID)
	if err != nil {
		return fmt.Errorf("resolve checkout session: %w", err)
	}
	return requireRow(result, "checkout session", sessionID)
}

func (r *BillingRepository) ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, `
		SELECT id, status, price_id, product_id, current_period_end, cancel_at_period_end, created
		FROM subscriptions WHERE user_id = ? ORDER BY created DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var (
			s       models.Subscription
			end     sql.NullString
			created string
		)
		if err := rows.Scan(&s.ID, &s.Status, &s.PriceID, &s.ProductID, &end, &s.CancelAtPeriodEnd, &created); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		if s.CurrentPeriodEnd, err = parseNullTime(end); err != nil {
			return nil, err
		}
		if s.DateCreated, err = parseTime(created); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
