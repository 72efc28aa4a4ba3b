// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings. It configures the lint server binary; the
// CLI reads its own per-project httplint.yaml instead (see pkg/lint).
//
// # Configuration Structure
//
// Server settings:
//
//	HTTPLINT_HOST="0.0.0.0"
//	HTTPLINT_PORT="8080"
//	HTTPLINT_READ_TIMEOUT="15s"
//	HTTPLINT_WRITE_TIMEOUT="30s"
//	HTTPLINT_IDLE_TIMEOUT="60s"
//	HTTPLINT_SHUTDOWN_TIMEOUT="30s"
//	HTTPLINT_MAX_REQUEST_BYTES="8388608"
//	HTTPLINT_RATE_LIMIT_ENABLED="true"
//	HTTPLINT_RATE_LIMIT_PER_MINUTE="120"
//	HTTPLINT_RATE_LIMIT_BURST="20"
//
// Lint engine settings:
//
//	HTTPLINT_MAX_CONCURRENCY="0"  # 0 means one worker per CPU
//	HTTPLINT_CACHE_SIZE="256"
//	HTTPLINT_CACHE_TTL="5m"
//
// Observability settings:
//
//	HTTPLINT_LOG_LEVEL="info"  # debug, info, warn, error
//	HTTPLINT_METRICS_ENABLED="true"
//	HTTPLINT_OTEL_ENABLED="false"
//	HTTPLINT_OTEL_ENDPOINT="localhost:4317"
//	HTTPLINT_OTEL_SERVICE_NAME="httplint-server"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s\n", cfg.Server.Addr())
//	fmt.Printf("Cache: %d entries, TTL %s\n", cfg.Lint.CacheSize, cfg.Lint.CacheTTL)
//	fmt.Printf("Log level: %s\n", cfg.Observability.LogLevel)
//
// # Related Packages
//
//   - pkg/api: Uses server configuration
//   - pkg/observability: Uses observability configuration
package config
