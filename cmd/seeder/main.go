package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/database"
	"github.com/alexivanou/cityweather/internal/repository"
	"github.com/alexivanou/cityweather/internal/seeder"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	file := flag.String("file", cfg.Seeder.File, "City list file, one name per line")
	fromEnv := flag.Bool("defaults", false, "Seed from DEFAULT_CITIES instead of a file")
	appendOnly := flag.Bool("append", false, "Add missing cities after the existing catalog instead of replacing it")
	flag.Parse()

	var cities []string
	if *fromEnv {
		cities = seeder.Dedupe(cfg.Cities)
	} else {
		logger.Info("Parsing city list...", zap.String("file", *file))
		cities, err = seeder.ParseCitiesFile(*file)
		if err != nil {
			logger.Fatal("Failed to parse city list", zap.Error(err))
		}
	}
	if len(cities) == 0 {
		logger.Fatal("City list is empty, nothing to import")
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

	if *appendOnly {
		logger.Info("Appending to city catalog...", zap.Int("cities", len(cities)))
		added, err := seeder.Append(ctx, repos.City, cities)
		if err != nil {
			logger.Fatal("Failed to append cities", zap.Error(err))
		}
		logger.Info("Data import completed", zap.Strings("added", added))
		return
	}

	logger.Info("Replacing city catalog...", zap.Int("cities", len(cities)))
	if err := repos.City.ReplaceCities(ctx, cities); err != nil {
		logger.Fatal("Failed to replace cities", zap.Error(err))
	}

	logger.Info("Data import completed", zap.Strings("cities", cities))
}
