package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"docit/internal/httputil"
)

// Recovery turns a handler panic into a problem+json 500 and logs the
// stack. http.ErrAbortHandler is re-raised so net/http can drop the
// connection quietly.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				// an upgraded WebSocket has no response left to write
				if r.Header.Get("Upgrade") != "" {
					return
				}
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
