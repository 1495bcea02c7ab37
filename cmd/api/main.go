// Package main is the entry point for the LedgerKeep API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerkeep/backend/config"
	"github.com/ledgerkeep/backend/internal/fx"
	"github.com/ledgerkeep/backend/internal/infra/db"
	"github.com/ledgerkeep/backend/internal/infra/dependency"
	"github.com/ledgerkeep/backend/internal/integration/persistence"
	"github.com/ledgerkeep/backend/internal/integration/persistence/model"
	"github.com/ledgerkeep/backend/internal/integration/seed"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting LedgerKeep API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Load the historical exchange-rate table
	rateTable, err := fx.LoadTable(cfg.FX.RatesPath, cfg.FX.PivotCurrency)
	if err != nil {
		slog.Error("Failed to load exchange-rate table", "path", cfg.FX.RatesPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Exchange-rate table loaded",
		"path", cfg.FX.RatesPath,
		"pivot", rateTable.Pivot(),
		"latest", rateTable.Latest().Format(fx.DateLayout),
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.ProfileModel{},
		&model.CurrencyModel{},
		&model.AccountModel{},
		&model.BalanceModel{},
		&model.TransactionModel{},
		&model.PlannedExpenseModel{},
		&model.SnapshotModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Seed currency reference data
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.Currencies(seedCtx, persistence.NewCurrencyRepository(database.DB())); err != nil {
		seedCancel()
		slog.Error("Failed to seed currencies", "error", err)
		os.Exit(1)
	}
	seedCancel()

	// Initialize Redis client for the snapshot cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		slog.Warn("Redis connection failed, snapshot reads fall back to the database", "error", err)
	}
	pingCancel()
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis client", "error", err)
		}
	}()

	// Wire dependencies and setup router
	injector := dependency.NewInjector(cfg, database, redisClient, rateTable)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
