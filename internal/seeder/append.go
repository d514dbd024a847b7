package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexivanou/cityweather/internal/model"
	"github.com/alexivanou/cityweather/internal/repository"
)

// Append adds the names not yet in the catalog after its last entry, keeping
// their order. Names already present (case-insensitive) are skipped. It
// returns the names that were added.
func Append(ctx context.Context, repo repository.CityRepository, names []string) ([]string, error) {
	existing, err := repo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	next := 0
	for _, c := range existing {
		seen[strings.ToLower(c.Name)] = true
		if c.Position >= next {
			next = c.Position + 1
		}
	}

	var cities []model.City
	for _, name := range Dedupe(names) {
		if seen[strings.ToLower(name)] {
			continue
		}
		cities = append(cities, model.City{Name: name, Position: next})
		next++
	}
	if len(cities) == 0 {
		return nil, nil
	}

	if err := repo.BulkInsertCities(ctx, cities); err != nil {
		return nil, fmt.Errorf("failed to append cities: %w", err)
	}

	added := make([]string, 0, len(cities))
	for _, c := range cities {
		added = append(added, c.Name)
	}
	return added, nil
}
