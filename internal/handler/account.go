package handler

import (
	"log/slog"
	"net/http"

	"docit/internal/domain/services"
	"docit/internal/httputil"
)

// AccountHandler backs the dashboard. These routes stay reachable with
// an unverified email so the user can ask for a verification link.
type AccountHandler struct {
	accountService services.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// GetAccount returns the session and the stored profile
// GET /api/me
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), session)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, account)
}

// UpdateProfile stores the registration profile
// PUT /api/me/profile
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	profile, err := h.accountService.UpdateProfile(r.Context(), session, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// SendPasswordReset returns a password reset link
// POST /api/me/password-reset
func (h *AccountHandler) SendPasswordReset(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	link, err := h.accountService.SendPasswordReset(r.Context(), session)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, link)
}

// SendEmailVerification returns an email verification link.
// 409 when the address is already verified.
// POST /api/me/email-verification
func (h *AccountHandler) SendEmailVerification(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	link, err := h.accountService.SendEmailVerification(r.Context(), session)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, link)
}

// DeleteAccount removes the caller's data and identity
// DELETE /api/me
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), session); err != nil {
		h.logger.Error("account deletion failed", "user_id", session.UserID, "error", err)
		handleError(w, err)
		return
	}

	h.logger.Info("account deleted", "user_id", session.UserID)
	w.WriteHeader(http.StatusNoContent)
}
