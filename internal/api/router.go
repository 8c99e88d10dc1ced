package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	mw "github.com/bhumilabs/bhumi/internal/api/middleware"
	"github.com/bhumilabs/bhumi/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	AllowedOrigins []string

	HealthHandler    http.HandlerFunc
	StatusHandler    http.HandlerFunc
	LanguagesHandler http.HandlerFunc

	SignupHandler http.HandlerFunc
	LoginHandler  http.HandlerFunc
	LogoutHandler http.HandlerFunc

	GetProfileHandler    http.HandlerFunc
	UpdateProfileHandler http.HandlerFunc

	DiseaseHandler   http.HandlerFunc
	CropsHandler     http.HandlerFunc
	YieldHandler     http.HandlerFunc
	AdvisoryHandler  http.HandlerFunc
	WeatherHandler   http.HandlerFunc
	ChatHandler      http.HandlerFunc
	VoiceChatHandler http.HandlerFunc
	AnalyticsHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	r.Get("/api/v1/status", orNotImplemented(deps.StatusHandler))
	r.Get("/api/v1/languages", orNotImplemented(deps.LanguagesHandler))

	r.Post("/api/v1/auth/signup", orNotImplemented(deps.SignupHandler))
	r.Post("/api/v1/auth/login", orNotImplemented(deps.LoginHandler))

	// Session-protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/api/v1/auth/logout", orNotImplemented(deps.LogoutHandler))

		r.Get("/api/v1/profile", orNotImplemented(deps.GetProfileHandler))
		r.Put("/api/v1/profile", orNotImplemented(deps.UpdateProfileHandler))

		r.Post("/api/v1/disease/analyze", orNotImplemented(deps.DiseaseHandler))
		r.Post("/api/v1/crops/recommend", orNotImplemented(deps.CropsHandler))
		r.Post("/api/v1/yield/predict", orNotImplemented(deps.YieldHandler))
		r.Post("/api/v1/advisory", orNotImplemented(deps.AdvisoryHandler))
		r.Get("/api/v1/weather", orNotImplemented(deps.WeatherHandler))

		r.Post("/api/v1/chat", orNotImplemented(deps.ChatHandler))
		r.Post("/api/v1/chat/voice", orNotImplemented(deps.VoiceChatHandler))

		r.Post("/api/v1/analytics/insight", orNotImplemented(deps.AnalyticsHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
