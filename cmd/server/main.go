// Package main is the entrypoint for the Bhumi API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bhumilabs/bhumi/internal/advisor"
	"github.com/bhumilabs/bhumi/internal/api"
	"github.com/bhumilabs/bhumi/internal/api/handler"
	mw "github.com/bhumilabs/bhumi/internal/api/middleware"
	"github.com/bhumilabs/bhumi/internal/auth"
	"github.com/bhumilabs/bhumi/internal/cache"
	"github.com/bhumilabs/bhumi/internal/config"
	"github.com/bhumilabs/bhumi/internal/gemini"
	"github.com/bhumilabs/bhumi/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "store_backend", cfg.Store.Backend, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Create store (the factory runs migrations for postgres)
	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			slog.Error("close store", "error", err)
		}
	}()
	slog.Info("store ready", "backend", cfg.Store.Backend)

	// 3. Create cache: Redis when configured, in-process otherwise
	var c cache.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		c = redisCache
		slog.Info("redis connected")
	} else {
		c = cache.NewMemoryCache()
		slog.Info("using in-memory cache")
	}
	defer c.Close()

	// 4. Create the Gemini client and the advisory service
	aiClient := gemini.NewHTTPClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Timeout)
	advice := advisor.NewService(aiClient, cfg.Gemini)
	slog.Info("AI layer initialized", "configured", advice.Configured())

	// 5. Create the auth service
	sessions := auth.NewService(st, c, cfg.Auth)

	// 6. Build router with dependencies
	deps := api.Dependencies{
		Auth:      mw.NewAuth(sessions),
		RateLimit: mw.NewRateLimit(c, 60),

		AllowedOrigins: cfg.Server.AllowedOrigins,

		HealthHandler: handler.NewHealthHandler(st, c),
		StatusHandler: handler.NewStatusHandler(handler.StatusInfo{
			Env:          cfg.Server.Env,
			StoreBackend: cfg.Store.Backend,
			AIConfigured: advice.Configured,
		}),
		LanguagesHandler: handler.NewLanguagesHandler(),

		SignupHandler: handler.NewSignupHandler(sessions),
		LoginHandler:  handler.NewLoginHandler(sessions),
		LogoutHandler: handler.NewLogoutHandler(sessions),

		GetProfileHandler:    handler.NewGetProfileHandler(sessions),
		UpdateProfileHandler: handler.NewUpdateProfileHandler(sessions),

		DiseaseHandler:   handler.NewDiseaseHandler(advice),
		CropsHandler:     handler.NewCropsHandler(advice),
		YieldHandler:     handler.NewYieldHandler(advice),
		AdvisoryHandler:  handler.NewAdvisoryHandler(advice),
		WeatherHandler:   handler.NewWeatherHandler(advice),
		ChatHandler:      handler.NewChatHandler(advice),
		VoiceChatHandler: handler.NewVoiceChatHandler(advice),
		AnalyticsHandler: handler.NewAnalyticsHandler(advice),
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
