package stats

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/database"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, config.DBConfig) {
	cfg := config.DBConfig{
		Type: config.DBTypeMemory,
		Name: fmt.Sprintf("statstest_%d", time.Now().UnixNano()),
	}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, cfg))
	return db, cfg
}

func TestCollector_Collect(t *testing.T) {
	db, cfg := setupTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "INSERT INTO cities (name, position) VALUES ('Mumbai', 0), ('Delhi', 1)")
	require.NoError(t, err)

	counters := NewCounters()
	counters.Record(OutcomeSuccess)
	counters.Record(OutcomeUpstreamError)
	counters.Record(OutcomeValidationError)
	counters.Record(OutcomeSuccess)

	collector := NewCollector(db, cfg, counters)

	stats, err := collector.Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, "memory", stats.Catalog.Type)
	assert.Equal(t, int64(2), stats.Catalog.Cities)
	assert.Greater(t, stats.Memory.Alloc, uint64(0))
	assert.GreaterOrEqual(t, stats.Runtime.NumGoroutines, 1)
	assert.Equal(t, ProxyStats{Requests: 4, Successes: 2, ValidationErrors: 1, UpstreamErrors: 1}, stats.Proxy)

	// memory stats are cached between calls
	stats2, err := collector.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.Memory, stats2.Memory)
}

func TestCollector_EmptyCatalogWithoutCounters(t *testing.T) {
	db, cfg := setupTestDB(t)

	collector := NewCollector(db, cfg, nil)

	stats, err := collector.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Catalog.Cities)
	assert.Equal(t, ProxyStats{}, stats.Proxy)
}

func TestCounters_Concurrent(t *testing.T) {
	counters := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counters.Record(OutcomeSuccess)
		}()
	}
	wg.Wait()

	snap := counters.Snapshot()
	assert.Equal(t, int64(50), snap.Requests)
	assert.Equal(t, int64(50), snap.Successes)
}

func TestCounters_NilSafe(t *testing.T) {
	var counters *Counters
	counters.Record(OutcomeSuccess)
	assert.Equal(t, ProxyStats{}, counters.Snapshot())
}
