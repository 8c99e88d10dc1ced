package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/bhumilabs/bhumi/internal/api/response"
)

// Recovery converts a handler panic into the standard error envelope. A bad
// model reply must never take the whole API down with it.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Error(w, http.StatusInternalServerError,
					"INTERNAL_ERROR", "An unexpected error occurred", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
