package service

import (
	"context"

	"github.com/alexivanou/cityweather/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	CurrentWeather(ctx context.Context, city string) ([]byte, error)
	SuggestCities(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error)
	DefaultCities(ctx context.Context) ([]string, error)
}

// WeatherProvider fetches current conditions for a city
type WeatherProvider interface {
	Current(ctx context.Context, city string) ([]byte, error)
}
