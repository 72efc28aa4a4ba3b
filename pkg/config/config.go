package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/httplint/pkg/observability"
)

// Config holds all server configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Lint engine configuration
	Lint LintConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MaxRequestBytes caps the size of lint request bodies.
	MaxRequestBytes int64

	// Per-IP rate limiting for the lint API
	RateLimitEnabled   bool
	RateLimitPerMinute int
	RateLimitBurst     int
}

// LintConfig holds lint engine and result cache settings
type LintConfig struct {
	// MaxConcurrency bounds per-file lint workers. Zero means one
	// worker per CPU.
	MaxConcurrency int

	// Result cache sizing
	CacheSize int
	CacheTTL  time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Lint:          loadLintConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("HTTPLINT_HOST", "0.0.0.0"),
		Port:            getEnv("HTTPLINT_PORT", "8080"),
		ReadTimeout:     getEnvDuration("HTTPLINT_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("HTTPLINT_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     getEnvDuration("HTTPLINT_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("HTTPLINT_SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxRequestBytes: getEnvInt64("HTTPLINT_MAX_REQUEST_BYTES", 8<<20),

		RateLimitEnabled:   getEnvBool("HTTPLINT_RATE_LIMIT_ENABLED", true),
		RateLimitPerMinute: getEnvInt("HTTPLINT_RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("HTTPLINT_RATE_LIMIT_BURST", 20),
	}
}

// loadLintConfig loads lint engine configuration from environment
func loadLintConfig() LintConfig {
	return LintConfig{
		MaxConcurrency: getEnvInt("HTTPLINT_MAX_CONCURRENCY", 0),
		CacheSize:      getEnvInt("HTTPLINT_CACHE_SIZE", 256),
		CacheTTL:       getEnvDuration("HTTPLINT_CACHE_TTL", 5*time.Minute),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           observability.ParseLevel(getEnv("HTTPLINT_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("HTTPLINT_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("HTTPLINT_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("HTTPLINT_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("HTTPLINT_OTEL_SERVICE_NAME", "httplint-server"),
		OTelServiceVersion: getEnv("HTTPLINT_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("HTTPLINT_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("max request bytes must be positive")
	}
	if c.Server.RateLimitEnabled {
		if c.Server.RateLimitPerMinute <= 0 {
			return fmt.Errorf("rate limit per minute must be positive when rate limiting is enabled")
		}
		if c.Server.RateLimitBurst < 0 {
			return fmt.Errorf("rate limit burst cannot be negative")
		}
	}

	// Validate lint config
	if c.Lint.MaxConcurrency < 0 {
		return fmt.Errorf("max concurrency cannot be negative")
	}
	if c.Lint.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	if c.Lint.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}

	// Validate OpenTelemetry config
	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// Addr returns the host:port the server listens on
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
