// Package main is the entry point for the Bike Logbook API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/bike-logbook/internal/config"
	"github.com/pkordes/bike-logbook/internal/handler"
	"github.com/pkordes/bike-logbook/internal/handler/gen"
	"github.com/pkordes/bike-logbook/internal/middleware"
	"github.com/pkordes/bike-logbook/internal/repo"
	"github.com/pkordes/bike-logbook/internal/routing"
	"github.com/pkordes/bike-logbook/internal/service"
	"github.com/pkordes/bike-logbook/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrate(ctx, pool); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// --- Routing provider -------------------------------------------------
	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		cache = redis.NewClient(opts)
		defer cache.Close()

		// The cache is optional: an unreachable Redis degrades to direct lookups.
		if err := cache.Ping(ctx).Err(); err != nil {
			slog.Warn("route cache unreachable, lookups will go to the provider", "error", err)
		} else {
			slog.Info("route cache connected", "ttl", cfg.RouteCacheTTL.String())
		}
	}
	directions := routing.NewClient(cfg.DirectionsBaseURL, cfg.GoogleMapsAPIKey, cfg.RoutingTimeout)
	routes := routing.NewCachedFinder(directions, cache, cfg.RouteCacheTTL, logger)

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	tripService := service.NewTripService(trips, routes, logger)
	statsService := service.NewStatsService(trips, cfg.Location, time.Now)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Metrics → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetrics())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Get("/openapi.yaml", handler.OpenAPISpec)
	r.Handle("/metrics", promhttp.Handler())

	server := handler.NewServer(tripService, statsService)
	gen.HandlerWithOptions(
		gen.NewStrictHandlerWithOptions(server, nil, handler.StrictOptions(logger)),
		gen.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: handler.ParamErrorHandler},
	)

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a full RoutingTimeout on POST /trips.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RoutingTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations through a database/sql handle
// borrowed from the pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration.String())
	}
	return nil
}
