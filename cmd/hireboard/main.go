package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hireboard/internal/config"
	"github.com/kailas-cloud/hireboard/internal/db"
	"github.com/kailas-cloud/hireboard/internal/db/memory"
	dbPostgres "github.com/kailas-cloud/hireboard/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/hireboard/internal/db/redis"
	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
	logpkg "github.com/kailas-cloud/hireboard/internal/logger"
	recordrepo "github.com/kailas-cloud/hireboard/internal/repository/record"
	chiTransport "github.com/kailas-cloud/hireboard/internal/transport/chi"
	analyticsuc "github.com/kailas-cloud/hireboard/internal/usecase/analytics"
	collectionuc "github.com/kailas-cloud/hireboard/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/hireboard/internal/usecase/health"
	"github.com/kailas-cloud/hireboard/internal/usecase/listing"
	recorduc "github.com/kailas-cloud/hireboard/internal/usecase/record"
	"github.com/kailas-cloud/hireboard/internal/version"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting hireboard API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	if err := prepareStore(ctx, cfg, store, logger); err != nil {
		logger.Fatal("Failed to prepare database", zap.Error(err))
	}

	catalog := domcol.Default()
	repo := recordrepo.New(store)

	an := cfg.Analytics
	server := chiTransport.NewServer(chiTransport.Services{
		Collections: collectionuc.New(catalog, store),
		Listing: listing.New(repo, catalog).
			WithLimits(an.DefaultListLimit, an.MaxListLimit).
			WithDeadlineDefaults(an.UpcomingDeadlines, an.UrgencyThresholdDays),
		Records: recorduc.New(repo, catalog),
		Analytics: analyticsuc.New(repo, analyticsuc.Settings{
			UrgencyThresholdDays: an.UrgencyThresholdDays,
			TopCompanies:         an.TopCompanies,
			UpcomingDeadlines:    an.UpcomingDeadlines,
			DashboardDeadlines:   an.DashboardDeadlines,
			RecentApplications:   an.RecentApplications,
		}),
		Health: healthuc.New(store, store, domcol.Applications),
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// schemaEnsurer is implemented by stores that own a schema.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// prepareStore creates the schema and loads the bundled fixtures when
// database.seed is set. It runs once the store answers.
func prepareStore(ctx context.Context, cfg config.Config, store db.Store, logger *zap.Logger) error {
	if s, ok := store.(schemaEnsurer); ok {
		if err := s.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	if !cfg.Database.Seed {
		return nil
	}
	n, err := memory.Seed(ctx, store, memory.Fixtures())
	if err != nil {
		return fmt.Errorf("seed fixtures: %w", err)
	}
	logger.Info("Seeded store", zap.String("db_driver", cfg.Database.Driver), zap.Int("records", n))
	return nil
}

// openStore builds the record store for the configured driver.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (db.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverRedis, config.DriverValkey:
		logger.Info("Using key-value store", zap.Strings("db_addrs", cfg.Database.Addrs))
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Database.Addrs,
			Username:  cfg.Database.Username,
			Password:  cfg.Database.Password,
			DB:        cfg.Database.DB,
			KeyPrefix: cfg.Storage.KeyPrefix,
		})
		if err != nil {
			// a typed nil *Store would make the interface non-nil
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := dbPostgres.NewStore(ctx, dbPostgres.Config{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
