package service

import "errors"

// ErrCityRequired is returned when a weather query is empty
var ErrCityRequired = errors.New("city is required")

// UpstreamError wraps any failure talking to the weather provider
type UpstreamError struct {
	City string
	Err  error
}

func (e *UpstreamError) Error() string {
	return "upstream weather request for " + e.City + " failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
