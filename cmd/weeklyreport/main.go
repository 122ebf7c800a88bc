// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the weekly report server.
// It loads configuration, wires the cache and settings backends, restores
// persisted settings, and starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"weeklyreport/internal/ai"
	"weeklyreport/internal/cache"
	"weeklyreport/internal/config"
	"weeklyreport/internal/database"
	"weeklyreport/internal/handlers"
	"weeklyreport/internal/local"
	"weeklyreport/internal/middleware"
	"weeklyreport/internal/models"
	"weeklyreport/internal/report"
	"weeklyreport/internal/router"
	"weeklyreport/internal/secret"
	"weeklyreport/internal/store"
)

func main() {
	// A local .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	registry := ai.NewRegistry(nil)

	var ids []string
	for _, p := range registry.List() {
		ids = append(ids, p.ID)
	}

	cfg, err := config.Load(ids...)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON otherwise.
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"provider", cfg.Provider,
		"cache_backend", cfg.CacheBackend,
		"settings_backend", cfg.SettingsBackend,
	)

	// Generation cache: in-process by default, Valkey when shared.
	var reportCache report.Cache = cache.NewMemory(cfg.CacheTTL)
	if cfg.CacheBackend == "valkey" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		valkeyClient, err := cache.ConnectValkey(ctx, cache.ValkeyOptions{
			Host:     cfg.ValkeyHost,
			Port:     cfg.ValkeyPort,
			Password: cfg.ValkeyPassword,
			DB:       cfg.ValkeyDB,
		})
		cancel()
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		reportCache = cache.NewReportCache(valkeyClient, cfg.CacheTTL)
	}

	// Credential sealing is optional outside production.
	var sealer store.Sealer
	if cfg.SecretKey != "" {
		s, err := secret.NewSealer(cfg.SecretKey)
		if err != nil {
			slog.Error("invalid SECRET_KEY", "error", err)
			os.Exit(1)
		}
		sealer = s
	} else if cfg.SettingsBackend != "none" {
		slog.Warn("SECRET_KEY not set, stored credentials will not be encrypted")
	}

	// Settings persistence.
	var settingsStore report.SettingsStore
	switch cfg.SettingsBackend {
	case "file":
		settingsStore = store.NewFileStore(cfg.SettingsFile, sealer)
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := database.Connect(ctx, cfg.DSN(), database.DefaultPool)
		if err != nil {
			cancel()
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		_, err = database.Migrate(ctx, db)
		cancel()
		if err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		settingsStore = store.NewSettingsStore(db, sealer)
	}

	overrides := make(map[string]ai.ProviderConfig, len(cfg.Providers))
	for id, p := range cfg.Providers {
		overrides[id] = ai.ProviderConfig{Model: p.Model, Endpoint: p.BaseURL}
	}

	svc := report.New(report.Options{
		Registry:  registry,
		Engine:    local.New(local.Uniform()),
		Cache:     reportCache,
		Store:     settingsStore,
		Providers: overrides,
		Settings: models.Settings{
			Provider:    cfg.Provider,
			Credentials: cfg.Credentials(),
			EnableCache: cfg.CacheEnabled,
		},
		RetryCount:      cfg.AIRetryCount,
		RetryDelay:      cfg.AIRetryDelay,
		Timeout:         cfg.AITimeout,
		DisableFallback: cfg.DisableFallback,
	})

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	err = svc.Load(loadCtx)
	cancelLoad()
	if err != nil {
		slog.Error("failed to restore settings", "error", err)
		os.Exit(1)
	}

	if provider := svc.Settings().Provider; !registry.Has(provider) {
		slog.Warn("selected provider is unknown, reports will use local templates", "provider", provider)
	}
	slog.Info("report service ready", "provider", svc.Settings().Provider, "mode", svc.Mode())

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		defer limiter.Stop()
	}

	r := router.New(handlers.New(svc), limiter)

	// WriteTimeout must cover every attempt plus the delays between them.
	// AI_TIMEOUT bounds one attempt across all of a provider's endpoints,
	// so the local fallback is always written before the deadline.
	writeTimeout := time.Duration(cfg.AIRetryCount)*(cfg.AITimeout+cfg.AIRetryDelay) + 10*time.Second
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
