package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/database"
	"github.com/alexivanou/cityweather/internal/stats"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	remote := flag.Bool("remote", false, "Fetch live statistics from the running proxy at PROXY_URL")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Client.Timeout)
	defer cancel()

	var statistics *stats.Stats
	if *remote {
		logger.Info("Fetching statistics...", zap.String("proxy_url", cfg.Client.ProxyURL))
		statistics, err = fetchRemote(ctx, cfg.Client.ProxyURL)
	} else {
		statistics, err = collectLocal(ctx, cfg, logger)
	}
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	outputFormat := os.Getenv("OUTPUT_FORMAT")
	if outputFormat == "" {
		outputFormat = "json"
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", outputFormat))
	}
}

func collectLocal(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stats.Stats, error) {
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Collecting statistics...", zap.String("db_type", string(cfg.DB.Type)))
	return stats.NewCollector(db, cfg.DB, nil).Collect(ctx)
}

func fetchRemote(ctx context.Context, proxyURL string) (*stats.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(proxyURL, "/")+"/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("proxy returned status %d", resp.StatusCode)
	}

	var s stats.Stats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode statistics: %w", err)
	}
	return &s, nil
}

func printHumanReadable(s *stats.Stats) {
	fmt.Println("=== Application Statistics ===")
	fmt.Printf("Timestamp: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println()

	fmt.Println("--- Memory Statistics ---")
	fmt.Printf("Allocated:        %s\n", formatBytes(s.Memory.Alloc))
	fmt.Printf("Total Allocated:  %s\n", formatBytes(s.Memory.TotalAlloc))
	fmt.Println()

	fmt.Println("--- Catalog Statistics ---")
	fmt.Printf("Type:            %s\n", s.Catalog.Type)
	fmt.Printf("Cities:          %d\n", s.Catalog.Cities)
	if s.Catalog.SizeBytes > 0 {
		fmt.Printf("Size:            %s\n", formatBytes(uint64(s.Catalog.SizeBytes)))
	}
	fmt.Println()

	fmt.Println("--- Proxy Statistics ---")
	fmt.Printf("Requests:        %d\n", s.Proxy.Requests)
	fmt.Printf("Successes:       %d\n", s.Proxy.Successes)
	fmt.Printf("Rejected:        %d\n", s.Proxy.ValidationErrors)
	fmt.Printf("Upstream Errors: %d\n", s.Proxy.UpstreamErrors)
	fmt.Println()

	fmt.Println("--- Runtime Statistics ---")
	fmt.Printf("Goroutines:      %d\n", s.Runtime.NumGoroutines)
	fmt.Printf("CPUs:            %d\n", s.Runtime.NumCPU)
	fmt.Printf("Uptime:          %ds\n", s.Runtime.UptimeSeconds)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
