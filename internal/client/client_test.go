package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mumbaiPayload = `{"location":{"name":"Mumbai"},"current":{"temperature":30,"weather_descriptions":["Sunny"]}}`

func newProxy(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.ClientConfig{ProxyURL: srv.URL + "/", Timeout: time.Second}, nil)
}

func TestClient_Weather(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPath, gotCity string
		c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotCity = r.URL.Query().Get("city")
			w.Write([]byte(mumbaiPayload))
		})

		result, err := c.Weather(context.Background(), "New Delhi")
		require.NoError(t, err)

		assert.Equal(t, "/weather", gotPath)
		assert.Equal(t, "New Delhi", gotCity)
		assert.Equal(t, "Mumbai", result.LocationName())
		assert.Equal(t, "Sunny", result.Description())
	})

	t.Run("non-2xx status", func(t *testing.T) {
		c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Error fetching weather data"}`))
		})

		_, err := c.Weather(context.Background(), "Nowhere")
		require.Error(t, err)

		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
		assert.Equal(t, "Nowhere", fe.City)
	})

	t.Run("unparsable body", func(t *testing.T) {
		c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		})

		_, err := c.Weather(context.Background(), "Mumbai")
		require.Error(t, err)
		assert.True(t, IsFetchError(err))
	})

	t.Run("proxy unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := New(config.ClientConfig{ProxyURL: url, Timeout: time.Second}, nil)
		_, err := c.Weather(context.Background(), "Mumbai")
		require.Error(t, err)
		assert.True(t, IsFetchError(err))
	})

	t.Run("context cancelled", func(t *testing.T) {
		c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Weather(ctx, "Mumbai")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
