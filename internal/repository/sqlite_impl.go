package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/cityweather/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqliteCityRepository struct {
	db        *sqlx.DB
	batchSize int
}

func (r *sqliteCityRepository) ListCities(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	if err := r.db.SelectContext(ctx, &cities, "SELECT id, name, position FROM cities ORDER BY position, id"); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *sqliteCityRepository) SearchCities(ctx context.Context, query string, limit int) ([]model.City, error) {
	cities, err := r.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	return filterCities(cities, query, limit), nil
}

func (r *sqliteCityRepository) ReplaceCities(ctx context.Context, names []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cities"); err != nil {
		return fmt.Errorf("failed to clear cities: %w", err)
	}
	if err := insertSQLite(ctx, tx, citiesFromNames(names), r.batchSize); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sqliteCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	return insertSQLite(ctx, r.db, cities, r.batchSize)
}

func insertSQLite(ctx context.Context, ext sqlx.ExtContext, cities []model.City, batchSize int) error {
	return chunkCities(cities, batchSize, func(batch []model.City) error {
		_, err := sqlx.NamedExecContext(ctx, ext, `
		INSERT OR IGNORE INTO cities (name, position)
		VALUES (:name, :position)`,
			batch)
		if err != nil {
			return fmt.Errorf("failed to insert cities: %w", err)
		}
		return nil
	})
}
