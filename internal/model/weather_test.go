package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mumbaiPayload = `{"location":{"name":"Mumbai"},"current":{"temperature":30,"weather_descriptions":["Sunny"]}}`

func TestParseWeatherResult(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		w, err := ParseWeatherResult([]byte(mumbaiPayload))
		require.NoError(t, err)

		assert.Equal(t, "Mumbai", w.LocationName())
		require.NotNil(t, w.Temperature())
		assert.Equal(t, 30.0, *w.Temperature())
		assert.Equal(t, "Sunny", w.Description())
		assert.JSONEq(t, mumbaiPayload, string(w.Raw))
	})

	t.Run("missing fields are tolerated", func(t *testing.T) {
		w, err := ParseWeatherResult([]byte(`{"current":{"weather_descriptions":[]}}`))
		require.NoError(t, err)

		assert.Empty(t, w.LocationName())
		assert.Nil(t, w.Temperature())
		assert.Empty(t, w.Description())
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseWeatherResult([]byte(`{"location":`))
		assert.Error(t, err)
	})

	t.Run("nil receiver", func(t *testing.T) {
		var w *WeatherResult
		assert.Empty(t, w.LocationName())
		assert.Nil(t, w.Temperature())
		assert.Empty(t, w.Description())
	})
}

func TestWeatherResult_MarshalJSON(t *testing.T) {
	w, err := ParseWeatherResult([]byte(mumbaiPayload))
	require.NoError(t, err)

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, mumbaiPayload, string(out))
}

func TestHasCurrentConditions(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    bool
		wantErr bool
	}{
		{name: "location and current", body: mumbaiPayload, want: true},
		{name: "provider error payload", body: `{"success":false,"error":{"code":615,"type":"request_failed"}}`, want: false},
		{name: "only location", body: `{"location":{}}`, want: false},
		{name: "array", body: `[1,2]`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "garbage", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasCurrentConditions([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
