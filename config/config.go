// Package config provides configuration management for the point of sale service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cart     CartConfig
	Analysis AnalysisConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              string
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
}

// CartConfig holds register configuration.
type CartConfig struct {
	TaxRate decimal.Decimal
	// CatalogFile replaces the built-in catalog when set.
	CatalogFile string
}

// AnalysisConfig holds the Gemini client, its cache and its breaker.
type AnalysisConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// DatabaseConfig holds MongoDB configuration for the activity log.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LoggingConfig holds zerolog configuration.
type LoggingConfig struct {
	Level  string
	Pretty bool
}

var defaultTaxRate = decimal.RequireFromString("0.08")

// Load reads an optional .env file and builds a Config from the environment.
// Variables already set take precedence over the file.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			RateLimit:         getEnvInt("RATE_LIMIT", 100),
			RateWindow:        getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			EnableIdempotency: getEnvBool("IDEMPOTENCY_ENABLED", true),
			CORSOrigins:       parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:       getEnv("SWAGGER_USER", ""),
			SwaggerPass:       getEnv("SWAGGER_PASS", ""),
		},
		Cart: CartConfig{
			TaxRate:     getEnvDecimal("CART_TAX_RATE", defaultTaxRate),
			CatalogFile: getEnv("CATALOG_FILE", ""),
		},
		Analysis: AnalysisConfig{
			APIKey:                         getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
			Model:                          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL:                        getEnv("GEMINI_BASE_URL", ""),
			Timeout:                        getEnvDuration("ANALYSIS_TIMEOUT", 20*time.Second),
			CacheSize:                      getEnvInt("ANALYSIS_CACHE_SIZE", 256),
			CacheTTL:                       getEnvDuration("ANALYSIS_CACHE_TTL", 10*time.Minute),
			CircuitBreakerFailureThreshold: getEnvInt("ANALYSIS_CB_FAILURE_THRESHOLD", 3),
			CircuitBreakerSuccessThreshold: getEnvInt("ANALYSIS_CB_SUCCESS_THRESHOLD", 1),
			CircuitBreakerTimeout:          getEnvDuration("ANALYSIS_CB_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "freshcart_pos"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

// LogsTTLDays returns the activity log retention in whole days, at least one.
func (d DatabaseConfig) LogsTTLDays() int {
	days := int(d.LogsTTL / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvDecimal accepts rates in [0, 1).
func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil &&
			!d.IsNegative() && d.LessThan(decimal.NewFromInt(1)) {
			return d
		}
	}
	return defaultValue
}

func parseCORSOrigins(s string) []string {
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
