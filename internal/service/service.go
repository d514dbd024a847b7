package service

import (
	"github.com/alexivanou/cityweather/internal/repository"
	"go.uber.org/zap"
)

// Service provides business logic for the API
type Service struct {
	weather  WeatherProvider
	cityRepo repository.CityRepository
	logger   *zap.Logger
}

// NewService creates a new service instance
func NewService(
	weather WeatherProvider,
	cityRepo repository.CityRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		weather:  weather,
		cityRepo: cityRepo,
		logger:   logger,
	}
}
