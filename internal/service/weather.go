package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// CurrentWeather returns the provider's current conditions payload for city,
// unchanged. The city is trimmed before it is forwarded.
func (s *Service) CurrentWeather(ctx context.Context, city string) ([]byte, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityRequired
	}

	body, err := s.weather.Current(ctx, city)
	if err != nil {
		s.logger.Warn("Upstream weather request failed",
			zap.String("city", city),
			zap.Error(err),
		)
		return nil, &UpstreamError{City: city, Err: err}
	}
	return body, nil
}
