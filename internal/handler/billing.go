package handler

import (
	"log/slog"
	"net/http"

	"docit/internal/domain/services"
	"docit/internal/httputil"
)

// BillingHandler handles the subscription flow
type BillingHandler struct {
	billingService services.BillingService
	logger         *slog.Logger
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService services.BillingService, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// ListProducts returns the active products with their prices
// GET /api/billing/products
func (h *BillingHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.billingService.ListProducts(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

// CreateCheckout requests a hosted checkout page and returns its URL.
// 504 when the payments extension does not answer in time.
// POST /api/billing/checkout
func (h *BillingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req services.CreateCheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.UserID = session.UserID

	result, err := h.billingService.CreateCheckout(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// ListSubscriptions returns the caller's subscriptions
// GET /api/billing/subscriptions
func (h *BillingHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	subs, err := h.billingService.ListSubscriptions(r.Context(), session.UserID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"subscriptions": subs,
	})
}
