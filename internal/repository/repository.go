package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/model"
	"github.com/jmoiron/sqlx"
)

// CityRepository defines operations on the city catalog
type CityRepository interface {
	// ListCities returns the catalog in configured order
	ListCities(ctx context.Context) ([]model.City, error)
	// SearchCities returns catalog entries matching query under
	// model.CityMatches, in configured order
	SearchCities(ctx context.Context, query string, limit int) ([]model.City, error)
	// ReplaceCities swaps the whole catalog for names, keeping their order
	ReplaceCities(ctx context.Context, names []string) error
	// BulkInsertCities adds cities, skipping names already present
	BulkInsertCities(ctx context.Context, cities []model.City) error
}

// Container holds all repositories
type Container struct {
	City CityRepository
}

// DefaultBatchSize is the insert chunk size used when none is configured
const DefaultBatchSize = 100

// NewRepositories creates repository implementations based on DB type.
// Inserts are sent in chunks of batchSize rows.
func NewRepositories(db *sqlx.DB, dbType config.DBType, batchSize int) *Container {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	if dbType == config.DBTypePostgreSQL {
		return &Container{
			City: &pgCityRepository{db: db, batchSize: batchSize},
		}
	}

	// Default to SQLite
	return &Container{
		City: &sqliteCityRepository{db: db, batchSize: batchSize},
	}
}

// IsCatalogEmpty reports whether the city catalog has no rows
func IsCatalogEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cities"); err != nil {
		return false, fmt.Errorf("failed to count cities: %w", err)
	}
	return count == 0, nil
}

// citiesFromNames assigns positions in slice order
func citiesFromNames(names []string) []model.City {
	cities := make([]model.City, 0, len(names))
	for i, name := range names {
		cities = append(cities, model.City{Name: name, Position: i})
	}
	return cities
}

// filterCities keeps the cities matching query, in input order, up to limit.
// Matching runs in Go so both dialects fold case exactly like the client.
func filterCities(cities []model.City, query string, limit int) []model.City {
	out := make([]model.City, 0)
	for _, c := range cities {
		if limit > 0 && len(out) == limit {
			break
		}
		if model.CityMatches(c.Name, query) {
			out = append(out, c)
		}
	}
	return out
}

func chunkCities(cities []model.City, size int, fn func([]model.City) error) error {
	for i := 0; i < len(cities); i += size {
		end := i + size
		if end > len(cities) {
			end = len(cities)
		}
		if err := fn(cities[i:end]); err != nil {
			return err
		}
	}
	return nil
}
