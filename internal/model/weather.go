package model

import (
	"encoding/json"
	"errors"
)

// ErrNotObject is returned when a weather payload is not a JSON object
var ErrNotObject = errors.New("weather payload is not a JSON object")

// WeatherResult wraps the upstream payload verbatim. Only the fields needed
// for display are decoded, and all of them are optional.
type WeatherResult struct {
	Raw json.RawMessage

	view weatherView
}

type weatherView struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		Temperature         *float64 `json:"temperature"`
		WeatherDescriptions []string `json:"weather_descriptions"`
	} `json:"current"`
}

// ParseWeatherResult decodes the display fields of raw. The raw bytes are kept
// untouched.
func ParseWeatherResult(raw []byte) (*WeatherResult, error) {
	var view weatherView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, err
	}
	return &WeatherResult{Raw: append(json.RawMessage(nil), raw...), view: view}, nil
}

// HasCurrentConditions reports whether raw is a JSON object carrying both the
// "location" and "current" keys.
func HasCurrentConditions(raw []byte) (bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false, err
	}
	if fields == nil {
		return false, ErrNotObject
	}
	_, hasLocation := fields["location"]
	_, hasCurrent := fields["current"]
	return hasLocation && hasCurrent, nil
}

// LocationName returns location.name or an empty string
func (w *WeatherResult) LocationName() string {
	if w == nil || w.view.Location == nil {
		return ""
	}
	return w.view.Location.Name
}

// Temperature returns current.temperature in Celsius, nil when absent
func (w *WeatherResult) Temperature() *float64 {
	if w == nil || w.view.Current == nil {
		return nil
	}
	return w.view.Current.Temperature
}

// Description returns the first weather description or an empty string
func (w *WeatherResult) Description() string {
	if w == nil || w.view.Current == nil || len(w.view.Current.WeatherDescriptions) == 0 {
		return ""
	}
	return w.view.Current.WeatherDescriptions[0]
}

// MarshalJSON emits the upstream payload unchanged
func (w WeatherResult) MarshalJSON() ([]byte, error) {
	if len(w.Raw) == 0 {
		return []byte("null"), nil
	}
	return w.Raw, nil
}
