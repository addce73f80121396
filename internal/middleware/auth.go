package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"docit/internal/auth"
	"docit/internal/httputil"

	"github.com/gorilla/websocket"
)

// eventsPath is the only route that takes its token from the query string
const eventsPath = "/api/events"

// AuthMiddleware verifies the bearer token and stores the session in the
// request context. Requests without a valid token are rejected with 401,
// except public paths and CORS pre-flight.
func AuthMiddleware(verifier auth.TokenVerifier, logger *slog.Logger, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || public[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			session, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithSession(r, session))
		})
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers
// on a WebSocket handshake, so the events upgrade may pass access_token in
// the query instead. Everywhere else the query is ignored to keep tokens
// out of access logs.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if r.Method == http.MethodGet && r.URL.Path == eventsPath && websocket.IsWebSocketUpgrade(r) {
		return r.URL.Query().Get("access_token")
	}
	return ""
}

// RequireVerifiedEmail blocks signed-in users whose email address is not
// verified yet. Must run after AuthMiddleware.
func RequireVerifiedEmail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := httputil.GetSession(r)
		if session == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		if !session.EmailVerified {
			httputil.RespondError(w, http.StatusForbidden, "email address not verified")
			return
		}
		next.ServeHTTP(w, r)
	})
}
