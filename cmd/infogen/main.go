// Package main is the entry point for the Infogen API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infogen/internal/cache"
	"infogen/internal/config"
	"infogen/internal/database"
	"infogen/internal/handlers"
	"infogen/internal/infographic"
	"infogen/internal/middleware"
	"infogen/internal/router"
	"infogen/internal/session"
	"infogen/internal/storage"
	"infogen/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(context.Background(), cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the template catalog (no-op if templates already exist).
	if cfg.IsDev() {
		if err := database.Seed(context.Background(), db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (template cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Outside development, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies, cfg.SessionTTL)

	// Object storage for export manifests is optional.
	var manifests handlers.ManifestStore
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		manifests = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, export manifests disabled")
	}

	// Initialize data stores.
	brandStore := store.NewBrandStore(db)
	projectStore := store.NewProjectStore(db)
	catalog := cache.NewTemplateCatalog(store.NewTemplateStore(db), valkeyClient, cfg.TemplateTTL)
	if cfg.IsDev() {
		// The seed may have changed the catalog behind a warm cache.
		catalog.Invalidate(context.Background())
	}

	service := infographic.NewService(catalog, brandStore, infographic.NewBuilder())

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow, cfg.TrustProxy)
	defer limiter.Stop()

	r := router.New(sessionStore, router.Handlers{
		Auth:      handlers.NewAuth(sessionStore),
		Templates: handlers.NewTemplates(catalog),
		Brands:    handlers.NewBrands(brandStore),
		Projects:  handlers.NewProjects(projectStore, brandStore, service),
		Generate:  handlers.NewGenerate(service, manifests),
	}, router.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		SecureCookies:  secureCookies,
		Limiter:        limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
