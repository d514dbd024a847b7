package stats

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/jmoiron/sqlx"
)

// Stats is the payload served by the stats endpoint
type Stats struct {
	Timestamp time.Time    `json:"timestamp"`
	Memory    MemoryStats  `json:"memory"`
	Catalog   CatalogStats `json:"catalog"`
	Runtime   RuntimeStats `json:"runtime"`
	Proxy     ProxyStats   `json:"proxy"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	HeapInuse  uint64 `json:"heap_inuse"`
	NumGC      uint32 `json:"num_gc"`
}

// CatalogStats describes the city catalog database
type CatalogStats struct {
	Type      string `json:"type"`
	Cities    int64  `json:"cities"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

// ProxyStats counts weather requests by outcome since start
type ProxyStats struct {
	Requests         int64 `json:"requests"`
	Successes        int64 `json:"successes"`
	ValidationErrors int64 `json:"validation_errors"`
	UpstreamErrors   int64 `json:"upstream_errors"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// Collector gathers Stats on demand
type Collector struct {
	db        *sqlx.DB
	config    config.DBConfig
	counters  *Counters
	startTime time.Time

	memMu     sync.Mutex
	mem       MemoryStats
	memReadAt time.Time
}

// memTTL limits how often runtime.ReadMemStats (stop-the-world) runs
var memTTL = 5 * time.Second

// NewCollector creates a collector. counters may be nil when no proxy traffic
// is observed, as in the stats command.
func NewCollector(db *sqlx.DB, cfg config.DBConfig, counters *Counters) *Collector {
	return &Collector{
		db:        db,
		config:    cfg,
		counters:  counters,
		startTime: time.Now(),
	}
}

// Collect takes a snapshot of all statistics
func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	catalog, err := c.catalogStats(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Timestamp: time.Now(),
		Memory:    c.memoryStats(),
		Catalog:   catalog,
		Runtime: RuntimeStats{
			NumGoroutines: runtime.NumGoroutine(),
			NumCPU:        runtime.NumCPU(),
			UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
		},
		Proxy: c.counters.Snapshot(),
	}, nil
}

func (c *Collector) memoryStats() MemoryStats {
	c.memMu.Lock()
	defer c.memMu.Unlock()

	if !c.memReadAt.IsZero() && time.Since(c.memReadAt) < memTTL {
		return c.mem
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	c.mem = MemoryStats{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		HeapInuse:  m.HeapInuse,
		NumGC:      m.NumGC,
	}
	c.memReadAt = time.Now()
	return c.mem
}

func (c *Collector) catalogStats(ctx context.Context) (CatalogStats, error) {
	stats := CatalogStats{Type: string(c.config.Type)}

	if err := c.db.GetContext(ctx, &stats.Cities, "SELECT COUNT(*) FROM cities"); err != nil {
		return stats, fmt.Errorf("failed to count cities: %w", err)
	}

	sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
	if c.config.Type == config.DBTypePostgreSQL {
		sizeQuery = "SELECT pg_database_size(current_database())"
	}
	// size is best effort
	_ = c.db.GetContext(ctx, &stats.SizeBytes, sizeQuery)

	return stats, nil
}
