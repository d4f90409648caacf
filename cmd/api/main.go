// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for goose
	"github.com/joho/godotenv"

	"github.com/iotinerary/planner/internal/config"
	"github.com/iotinerary/planner/internal/handler"
	"github.com/iotinerary/planner/internal/middleware"
	"github.com/iotinerary/planner/internal/planner"
	"github.com/iotinerary/planner/internal/repo"
	"github.com/iotinerary/planner/internal/service"
	"github.com/iotinerary/planner/migrations"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply pending database migrations before serving")
	flag.Parse()

	// --- Config -----------------------------------------------------------
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		// The default logger writes plain text to stderr until ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logLevel, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool.New does not open connections; the ping below does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if *migrate {
		if err := runMigrations(context.Background(), cfg.DatabaseURL); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	// --- Services ---------------------------------------------------------
	estimator := planner.NewEstimator(cfg.AverageSpeedKPH, cfg.DailyCapacityMinutes, cfg.DayEndHour)

	hubRepo := repo.NewHubRepo(pool)
	itineraryRepo := repo.NewItineraryRepo(pool)
	stopRepo := repo.NewStopRepo(pool)

	server := handler.NewServer(
		service.NewHubService(hubRepo),
		service.NewPlannerService(hubRepo, estimator, logger),
		service.NewItineraryService(itineraryRepo, stopRepo, hubRepo, estimator, logger),
		service.NewExportService(itineraryRepo, stopRepo, hubRepo, estimator),
		logger,
	)

	// --- Router -----------------------------------------------------------
	// Order: RequestID, RealIP, Logger, Recoverer, CORS, body limit.
	// Recoverer sits inside the logger so a recovered panic is logged as a 500.
	r := handler.NewRouter(server,
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		middleware.NewSlogLogger(logger),
		chimiddleware.Recoverer,
		middleware.NewCORSHandler(cfg.CORSOrigins),
		middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes),
	)

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting",
			"addr", srv.Addr,
			"average_speed_kph", estimator.SpeedKPH(),
			"daily_capacity_minutes", estimator.CapacityMinutes(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies every pending migration. goose needs database/sql,
// so it gets its own short-lived connection next to the pool.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := migrations.Apply(ctx, db)
	if err != nil {
		return err
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
