// Package client talks to the weather proxy on behalf of the terminal UI.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/model"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

// FetchError is returned for any failed proxy call: the proxy is unreachable,
// answered with a non-2xx status, or sent a body that could not be parsed.
type FetchError struct {
	City       string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching weather for %q: proxy returned status %d", e.City, e.StatusCode)
	}
	return fmt.Sprintf("fetching weather for %q: %v", e.City, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches weather from the proxy's /weather endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// New creates a proxy client from configuration
func New(cfg config.ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.ProxyURL, "/"),
		logger:     logger,
	}
}

// Weather fetches current conditions for city
func (c *Client) Weather(ctx context.Context, city string) (*model.WeatherResult, error) {
	endpoint := c.baseURL + "/weather?" + url.Values{"city": {city}}.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{City: city, Err: err}
	}
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &FetchError{City: city, Err: err}
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("Failed to close proxy response body", zap.Error(err))
		}
	}(response.Body)

	c.logger.Debug("Proxy responded",
		zap.String("city", city),
		zap.Int("status", response.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{City: city, StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{City: city, Err: err}
	}

	result, err := model.ParseWeatherResult(body)
	if err != nil {
		return nil, &FetchError{City: city, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return result, nil
}

// IsFetchError reports whether err came from a proxy call
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
