package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/model"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single upstream round trip when none is configured
	DefaultTimeout = 8 * time.Second

	// maxBodySize caps how much of an upstream response is read
	maxBodySize = 1 << 20
)

var (
	// UserAgent is sent with every upstream request
	UserAgent = "cityweather/1.0 (+https://github.com/alexivanou/cityweather)"

	ErrMissingCurrent = errors.New("upstream response lacks location or current conditions")
)

// StatusError is returned when the provider answers with a non-2xx status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Client fetches current conditions from a weatherstack-compatible API
type Client struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient creates an upstream client from configuration
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		accessKey:  cfg.AccessKey,
		timeout:    timeout,
		logger:     logger,
	}
}

// Current performs one GET against the current conditions endpoint and returns
// the response body unchanged. The body is guaranteed to be a JSON object with
// "location" and "current" keys.
func (c *Client) Current(ctx context.Context, city string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upstream URL: %w", err)
	}
	query := reqURL.Query()
	query.Set("access_key", c.accessKey)
	query.Set("query", city)
	reqURL.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		// url.Error echoes the request URL, which carries the access key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to perform upstream request: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("Failed to close upstream response body", zap.Error(err))
		}
	}(response.Body)

	c.logger.Debug("Upstream responded",
		zap.String("city", city),
		zap.Int("status", response.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	ok, err := model.HasCurrentConditions(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode upstream response: %w", err)
	}
	if !ok {
		return nil, ErrMissingCurrent
	}

	return body, nil
}
