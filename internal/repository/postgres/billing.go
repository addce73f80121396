package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
)

// PostgresBillingRepository mirrors the payments extension's collections as
// tables. A webhook bridge fills in checkout URLs and subscriptions.
type PostgresBillingRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(config *RepositoryConfig) repositories.BillingRepository {
	return &PostgresBillingRepository{pool: config.Pool, tables: config.Tables}
}

func (r *PostgresBillingRepository) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.active, p.role,
		       pr.id, pr.active, pr.currency, pr.unit_amount, pr.interval
		FROM %s p
		JOIN %s pr ON pr.product_id = p.id AND pr.active
		WHERE p.active
		ORDER BY p.name ASC, pr.unit_amount ASC
	`, r.tables.Products, r.tables.Prices)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *PostgresBillingRepository) UpsertProduct(ctx context.Context, product *models.Product) error {
	productQuery := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, active, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description,
		    active = EXCLUDED.active, role = EXCLUDED.role
	`, r.tables.Products)
	priceQuery := fmt.Sprintf(`
		INSERT INTO %s (id, product_id, active, currency, unit_amount, interval)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET active = EXCLUDED.active, currency = EXCLUDED.currency,
		    unit_amount = EXCLUDED.unit_amount, interval = EXCLUDED.interval
	`, r.tables.Prices)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, productQuery, product.ID, product.Name, product.Description, product.Active, product.Role); err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	for _, price := range product.Prices {
		if _, err := executor.Exec(ctx, priceQuery, price.ID, product.ID, price.Active, price.Currency, price.UnitAmount, price.Interval); err != nil {
			return fmt.Errorf("upsert price %s: %w", price.ID, err)
		}
	}
	return nil
}

func (r *PostgresBillingRepository) CreateCheckoutSession(ctx context.Context, session *models.CheckoutSession) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, price_id, success_url, cancel_url, created)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.CheckoutSessions)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		session.UserID, session.PriceID, session.SuccessURL, session.CancelURL, session.DateCreated,
	).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("create checkout session: %w", err)
	}
	return nil
}

func (r *PostgresBillingRepository) GetCheckoutSession(ctx context.Context, userID, sessionID string) (*models.CheckoutSession, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, price_id, success_url, cancel_url, url, error, created
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.CheckoutSessions)

	var s models.CheckoutSession
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, sessionID, userID).Scan(
		&s.ID, &s.UserID, &s.PriceID, &s.SuccessURL, &s.CancelURL, &s.URL, &s.Error, &s.DateCreated,
	)
	if err != nil {
		return nil, wrapGetError(err, "checkout session", sessionID)
	}
	return &s, nil
}

func (r *PostgresBillingRepository) ResolveCheckoutSession(ctx context.Context, userID, sessionID, url, errMsg string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET url = $1, error = $2
		WHERE id = $3 AND user_id = $4
	`, r.tables.CheckoutSessions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, url, errMsg, sessionID, userID)
	if err != nil {
		return fmt.Errorf("resolve checkout session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("checkout session %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresBillingRepository) ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT id, status, price_id, product_id, current_period_end, cancel_at_period_end, created
		FROM %s
		WHERE user_id = $1
		ORDER BY created DESC
	`, r.tables.Subscriptions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var s models.Subscription
		if err := rows.Scan(&s.ID, &s.Status, &s.PriceID, &s.ProductID, &s.CurrentPeriodEnd, &s.CancelAtPeriodEnd, &s.DateCreated); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return subs, nil
}
