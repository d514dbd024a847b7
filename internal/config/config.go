package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultUpstreamURL = "http://api.weatherstack.com/current"
	defaultProxyURL    = "http://localhost:5000"
	defaultCities      = "Bhagalpur,Mumbai,Delhi,Bangalore,Chennai,Kolkata"
)

// Config holds application configuration
type Config struct {
	DB       DBConfig
	Server   ServerConfig
	Upstream UpstreamConfig
	Client   ClientConfig
	Seeder   SeederConfig
	// Cities is the ordered default city list; order is significant
	Cities []string
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds city catalog database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// UpstreamConfig describes the external weather provider
type UpstreamConfig struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
}

// ClientConfig holds settings for the terminal client
type ClientConfig struct {
	ProxyURL string
	Timeout  time.Duration
}

// SeederConfig holds settings for city list import
type SeederConfig struct {
	BatchSize int
	File      string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		if c.Name != "" && c.Name != "cityweather" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "cityweather"),
			Password: getEnv("DB_PASSWORD", "cityweather_password"),
			Name:     getEnv("DB_NAME", "cityweather"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", getEnv("APP_PORT", "5000")),
		},
		Upstream: UpstreamConfig{
			BaseURL:   getEnv("WEATHERSTACK_API_URL", defaultUpstreamURL),
			AccessKey: os.Getenv("WEATHERSTACK_API_KEY"),
			Timeout:   getEnvAsDuration("UPSTREAM_TIMEOUT", 8*time.Second),
		},
		Client: ClientConfig{
			ProxyURL: strings.TrimRight(getEnv("PROXY_URL", defaultProxyURL), "/"),
			Timeout:  getEnvAsDuration("CLIENT_TIMEOUT", 10*time.Second),
		},
		Seeder: SeederConfig{
			BatchSize: getEnvAsInt("SEEDER_BATCH_SIZE", 100),
			File:      getEnv("SEEDER_FILE", "data/cities.txt"),
		},
		Cities: getEnvAsSlice("DEFAULT_CITIES"),
	}

	if len(config.Cities) == 0 {
		config.Cities = splitList(defaultCities)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("5s") or plain seconds ("5")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	return splitList(value)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
