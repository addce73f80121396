package models

import "time"

// Product is a subscription product synced by the payments extension.
type Product struct {
	ID          string  `json:"id" firestore:"-"`
	Name        string  `json:"name" firestore:"name"`
	Description string  `json:"description,omitempty" firestore:"description"`
	Active      bool    `json:"active" firestore:"active"`
	Role        string  `json:"role,omitempty" firestore:"role"`
	Prices      []Price `json:"prices" firestore:"-"`
}

// Price is a recurring price of a product.
type Price struct {
	ID         string `json:"id" firestore:"-"`
	ProductID  string `json:"product_id" firestore:"-"`
	Active     bool   `json:"active" firestore:"active"`
	Currency   string `json:"currency" firestore:"currency"`
	UnitAmount int64  `json:"unit_amount" firestore:"unit_amount"`
	Interval   string `json:"interval" firestore:"interval"`
}

// CheckoutSession is the request document the payments extension answers.
// The extension fills in URL or Error.
type CheckoutSession struct {
	ID          string    `json:"id" firestore:"-"`
	UserID      string    `json:"user_id" firestore:"-"`
	PriceID     string    `json:"price" firestore:"price"`
	SuccessURL  string    `json:"success_url" firestore:"success_url"`
	CancelURL   string    `json:"cancel_url" firestore:"cancel_url"`
	URL         string    `json:"url,omitempty" firestore:"url,omitempty"`
	Error       string    `json:"error,omitempty" firestore:"-"`
	DateCreated time.Time `json:"date_created" firestore:"created"`
}

// Resolved reports whether the extension has answered.
func (c *CheckoutSession) Resolved() bool {
	return c.URL != "" || c.Error != ""
}

// Subscription is a customer subscription written by the extension.
type Subscription struct {
	ID                string     `json:"id" firestore:"-"`
	Status            string     `json:"status" firestore:"status"`
	PriceID           string     `json:"price_id" firestore:"-"`
	ProductID         string     `json:"product_id" firestore:"-"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end,omitempty" firestore:"current_period_end"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end" firestore:"cancel_at_period_end"`
	DateCreated       time.Time  `json:"date_created" firestore:"created"`
}
