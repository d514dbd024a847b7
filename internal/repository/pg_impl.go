package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/cityweather/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgCityRepository struct {
	db        *sqlx.DB
	batchSize int
}

func (r *pgCityRepository) ListCities(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	if err := r.db.SelectContext(ctx, &cities, "SELECT id, name, position FROM cities ORDER BY position, id"); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *pgCityRepository) SearchCities(ctx context.Context, query string, limit int) ([]model.City, error) {
	cities, err := r.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	return filterCities(cities, query, limit), nil
}

func (r *pgCityRepository) ReplaceCities(ctx context.Context, names []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE cities RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to clear cities: %w", err)
	}
	if err := insertPG(ctx, tx, citiesFromNames(names), r.batchSize); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *pgCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	return insertPG(ctx, r.db, cities, r.batchSize)
}

func insertPG(ctx context.Context, ext sqlx.ExtContext, cities []model.City, batchSize int) error {
	return chunkCities(cities, batchSize, func(batch []model.City) error {
		_, err := sqlx.NamedExecContext(ctx, ext, `
		INSERT INTO cities (name, position)
		VALUES (:name, :position)
		ON CONFLICT DO NOTHING`,
			batch)
		if err != nil {
			return fmt.Errorf("failed to insert cities: %w", err)
		}
		return nil
	})
}
