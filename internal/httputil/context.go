package httputil

import (
	"context"
	"net/http"

	"docit/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	sessionKey contextKey = "session"
)

// WithSession adds the verified session to the request context
func WithSession(r *http.Request, session *models.Session) *http.Request {
	ctx := context.WithValue(r.Context(), sessionKey, session)
	return r.WithContext(ctx)
}

// GetSession retrieves the session from context, nil when signed out
func GetSession(r *http.Request) *models.Session {
	session, _ := r.Context().Value(sessionKey).(*models.Session)
	return session
}

// GetUserID retrieves the session's user id, returns empty string if signed out
func GetUserID(r *http.Request) string {
	if session := GetSession(r); session != nil {
		return session.UserID
	}
	return ""
}
