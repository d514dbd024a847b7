package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/alexivanou/cityweather/internal/model"
)

const (
	defaultLimit = 10
	// inputs at or below this many characters never produce suggestions
	minSuggestLength = 1
)

// SuggestCities returns catalog cities containing the query. Short queries
// yield an empty result rather than an error.
func (s *Service) SuggestCities(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error) {
	if utf8.RuneCountInString(req.Query) <= minSuggestLength {
		return &model.SuggestResponse{Results: []string{}}, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	cities, err := s.cityRepo.SearchCities(ctx, req.Query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search cities: %w", err)
	}

	results := make([]string, 0, len(cities))
	for _, c := range cities {
		results = append(results, c.Name)
	}
	return &model.SuggestResponse{Results: results}, nil
}

// DefaultCities returns the catalog in configured order
func (s *Service) DefaultCities(ctx context.Context) ([]string, error) {
	cities, err := s.cityRepo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
	}
	return names, nil
}
