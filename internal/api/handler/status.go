package handler

import (
	"net/http"

	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/internal/cache"
	"github.com/bhumilabs/bhumi/internal/store"
	"github.com/bhumilabs/bhumi/pkg/prompt"
)

// NewHealthHandler checks store and cache connectivity.
func NewHealthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"store": "ok",
			"cache": "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["store"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		degraded := checks["store"] != "ok" || checks["cache"] != "ok"
		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}

// StatusInfo is the static deployment info reported by the status endpoint.
type StatusInfo struct {
	Env          string
	StoreBackend string
	AIConfigured func() bool
}

// NewStatusHandler reports deployment configuration, including whether the
// AI layer has a credential.
func NewStatusHandler(info StatusInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, map[string]any{
			"service":       "bhumi",
			"env":           info.Env,
			"store_backend": info.StoreBackend,
			"ai_configured": info.AIConfigured(),
		})
	}
}

// NewLanguagesHandler lists the languages replies can be produced in.
func NewLanguagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, prompt.SupportedLanguages())
	}
}
