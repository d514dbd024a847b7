package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/database"
	"github.com/alexivanou/cityweather/internal/model"
	"github.com/alexivanou/cityweather/internal/repository"
	"github.com/alexivanou/cityweather/internal/service"
	"github.com/alexivanou/cityweather/internal/stats"
	"github.com/alexivanou/cityweather/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubProvider answers like weatherstack for Mumbai, drops the connection for
// Nowhere and returns 404 for anything else.
func stubProvider(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_key") != "test-key" {
			w.Write([]byte(`{"success":false,"error":{"code":101,"type":"invalid_access_key"}}`))
			return
		}
		switch city := r.URL.Query().Get("query"); city {
		case "Mumbai":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(mumbaiPayload))
		case "Nowhere":
			hj, ok := w.(http.Hijacker)
			if !ok {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupIntegrationStack(t *testing.T, accessKey string) (http.Handler, *stats.Counters) {
	provider := stubProvider(t)

	dbCfg := config.DBConfig{
		Type: config.DBTypeMemory,
		Name: fmt.Sprintf("apitest_%d", time.Now().UnixNano()),
	}
	db, err := database.Connect(context.Background(), dbCfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, dbCfg))

	repos := repository.NewRepositories(db, dbCfg.Type, 0)
	require.NoError(t, repos.City.ReplaceCities(context.Background(),
		[]string{"Bhagalpur", "Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata"}))

	client := upstream.NewClient(config.UpstreamConfig{
		BaseURL:   provider.URL + "/current",
		AccessKey: accessKey,
		Timeout:   2 * time.Second,
	}, zap.NewNop())

	counters := stats.NewCounters()
	svc := service.NewService(client, repos.City, zap.NewNop())
	collector := stats.NewCollector(db, dbCfg, counters)

	return NewRouter(svc, collector, counters, zap.NewNop()), counters
}

func serve(handler http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAPI_Integration_Weather(t *testing.T) {
	handler, counters := setupIntegrationStack(t, "test-key")

	t.Run("known city is returned verbatim", func(t *testing.T) {
		rr := serve(handler, "/weather?city=Mumbai")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, mumbaiPayload, rr.Body.String())
	})

	t.Run("empty city", func(t *testing.T) {
		rr := serve(handler, "/weather?city=")

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"City is required"}`, rr.Body.String())
	})

	t.Run("missing city with other parameters", func(t *testing.T) {
		rr := serve(handler, "/weather?units=f&lang=en")

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"City is required"}`, rr.Body.String())
	})

	t.Run("connection failure", func(t *testing.T) {
		rr := serve(handler, "/weather?city=Nowhere")

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Error fetching weather data"}`, rr.Body.String())
	})

	t.Run("upstream non-success status", func(t *testing.T) {
		rr := serve(handler, "/weather?city=Atlantis")

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Error fetching weather data"}`, rr.Body.String())
	})

	t.Run("repeated search is identical", func(t *testing.T) {
		first := serve(handler, "/weather?city=Mumbai")
		second := serve(handler, "/weather?city=Mumbai")

		assert.Equal(t, first.Code, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	snap := counters.Snapshot()
	assert.Equal(t, int64(7), snap.Requests)
	assert.Equal(t, int64(3), snap.Successes)
	assert.Equal(t, int64(2), snap.ValidationErrors)
	assert.Equal(t, int64(2), snap.UpstreamErrors)
}

func TestAPI_Integration_ProviderRejectsKey(t *testing.T) {
	handler, _ := setupIntegrationStack(t, "wrong-key")

	rr := serve(handler, "/weather?city=Mumbai")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Error fetching weather data"}`, rr.Body.String())
}

func TestAPI_Integration_Catalog(t *testing.T) {
	handler, _ := setupIntegrationStack(t, "test-key")

	t.Run("cities keep configured order", func(t *testing.T) {
		rr := serve(handler, "/api/v1/cities")

		require.Equal(t, http.StatusOK, rr.Code)
		var resp model.CitiesResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Bhagalpur", "Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata"}, resp.Cities)
	})

	t.Run("suggest", func(t *testing.T) {
		rr := serve(handler, "/api/v1/suggest?q=BA")

		require.Equal(t, http.StatusOK, rr.Code)
		var resp model.SuggestResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Mumbai", "Bangalore"}, resp.Results)
	})

	t.Run("stats", func(t *testing.T) {
		serve(handler, "/weather?city=Mumbai")
		rr := serve(handler, "/api/v1/stats")

		require.Equal(t, http.StatusOK, rr.Code)
		var resp stats.Stats
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(6), resp.Catalog.Cities)
		assert.Equal(t, int64(1), resp.Proxy.Successes)
	})
}
