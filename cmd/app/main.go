package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/cityweather/internal/api"
	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/database"
	"github.com/alexivanou/cityweather/internal/repository"
	"github.com/alexivanou/cityweather/internal/seeder"
	"github.com/alexivanou/cityweather/internal/service"
	"github.com/alexivanou/cityweather/internal/stats"
	"github.com/alexivanou/cityweather/internal/upstream"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Upstream.AccessKey == "" {
		logger.Warn("WEATHERSTACK_API_KEY is not set, upstream requests will be rejected")
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := database.Migrate(db, cfg.DB); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepositories(db, cfg.DB.Type, cfg.Seeder.BatchSize)

	isEmpty, err := repository.IsCatalogEmpty(ctx, db)
	if err != nil {
		logger.Warn("Failed to check if city catalog is empty", zap.Error(err))
	} else if isEmpty {
		cities := seeder.Dedupe(cfg.Cities)
		if err := repos.City.ReplaceCities(ctx, cities); err != nil {
			logger.Fatal("Failed to seed city catalog", zap.Error(err))
		}
		logger.Info("City catalog seeded", zap.Strings("cities", cities))
	}

	weather := upstream.NewClient(cfg.Upstream, logger.Named("upstream"))
	svc := service.NewService(weather, repos.City, logger.Named("service"))
	counters := stats.NewCounters()
	statsCollector := stats.NewCollector(db, cfg.DB, counters)
	router := api.NewRouter(svc, statsCollector, counters, logger.Named("http"))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
		// leaves room for one full upstream round trip
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Upstream.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.Duration("upstream_timeout", cfg.Upstream.Timeout),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
