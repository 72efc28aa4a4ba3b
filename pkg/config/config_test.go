package config

import (
	"os"
	"testing"
	"time"

	"github.com/platinummonkey/httplint/pkg/observability"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvBool tests the getEnvBool helper function
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue bool
		envValue     string
		want         bool
	}{
		{
			name:         "returns true for 'true'",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "true",
			want:         true,
		},
		{
			name:         "returns true for '1'",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "1",
			want:         true,
		},
		{
			name:         "returns false for 'false'",
			key:          "TEST_BOOL",
			defaultValue: true,
			envValue:     "false",
			want:         false,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_BOOL_NOT_SET",
			defaultValue: true,
			envValue:     "",
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnvBool(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvInt tests the getEnvInt helper function
func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue int
		envValue     string
		want         int
	}{
		{
			name:         "returns parsed value",
			key:          "TEST_INT",
			defaultValue: 10,
			envValue:     "42",
			want:         42,
		},
		{
			name:         "returns default for invalid value",
			key:          "TEST_INT",
			defaultValue: 10,
			envValue:     "not-a-number",
			want:         10,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_INT_NOT_SET",
			defaultValue: 10,
			envValue:     "",
			want:         10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnvInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvDuration tests the getEnvDuration helper function
func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue time.Duration
		envValue     string
		want         time.Duration
	}{
		{
			name:         "returns parsed duration",
			key:          "TEST_DUR",
			defaultValue: time.Second,
			envValue:     "5m",
			want:         5 * time.Minute,
		},
		{
			name:         "returns default for invalid value",
			key:          "TEST_DUR",
			defaultValue: time.Second,
			envValue:     "eventually",
			want:         time.Second,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_DUR_NOT_SET",
			defaultValue: time.Second,
			envValue:     "",
			want:         time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnvDuration(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLoadConfig_Defaults tests default configuration loading
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.MaxRequestBytes != 8<<20 {
		t.Errorf("Expected default max request bytes 8MiB, got %d", cfg.Server.MaxRequestBytes)
	}
	if !cfg.Server.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.Server.RateLimitPerMinute != 120 {
		t.Errorf("Expected default rate limit 120/min, got %d", cfg.Server.RateLimitPerMinute)
	}
	if cfg.Server.RateLimitBurst != 20 {
		t.Errorf("Expected default rate limit burst 20, got %d", cfg.Server.RateLimitBurst)
	}
	if cfg.Lint.CacheSize != 256 {
		t.Errorf("Expected default cache size 256, got %d", cfg.Lint.CacheSize)
	}
	if cfg.Lint.CacheTTL != 5*time.Minute {
		t.Errorf("Expected default cache TTL 5m, got %v", cfg.Lint.CacheTTL)
	}
	if cfg.Lint.MaxConcurrency != 0 {
		t.Errorf("Expected default max concurrency 0, got %d", cfg.Lint.MaxConcurrency)
	}
	if cfg.Observability.LogLevel != observability.InfoLevel {
		t.Errorf("Expected default log level info, got %v", cfg.Observability.LogLevel)
	}
	if !cfg.Observability.MetricsEnabled {
		t.Error("Expected metrics enabled by default")
	}
	if cfg.Observability.OTelEnabled {
		t.Error("Expected OTel disabled by default")
	}
}

// TestLoadConfig_FromEnvironment tests environment variable overrides
func TestLoadConfig_FromEnvironment(t *testing.T) {
	envs := map[string]string{
		"HTTPLINT_PORT":                  "9000",
		"HTTPLINT_LOG_LEVEL":             "debug",
		"HTTPLINT_CACHE_SIZE":            "64",
		"HTTPLINT_CACHE_TTL":             "90s",
		"HTTPLINT_MAX_CONCURRENCY":       "4",
		"HTTPLINT_RATE_LIMIT_ENABLED":    "false",
		"HTTPLINT_RATE_LIMIT_PER_MINUTE": "600",
		"HTTPLINT_OTEL_ENABLED":          "true",
		"HTTPLINT_OTEL_ENDPOINT":         "collector:4317",
	}
	for k, v := range envs {
		os.Setenv(k, v)
	}
	defer func() {
		for k := range envs {
			os.Unsetenv(k)
		}
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:9000" {
		t.Errorf("Expected addr 0.0.0.0:9000, got %s", cfg.Server.Addr())
	}
	if cfg.Observability.LogLevel != observability.DebugLevel {
		t.Errorf("Expected debug level, got %v", cfg.Observability.LogLevel)
	}
	if cfg.Lint.CacheSize != 64 {
		t.Errorf("Expected cache size 64, got %d", cfg.Lint.CacheSize)
	}
	if cfg.Lint.CacheTTL != 90*time.Second {
		t.Errorf("Expected cache TTL 90s, got %v", cfg.Lint.CacheTTL)
	}
	if cfg.Lint.MaxConcurrency != 4 {
		t.Errorf("Expected max concurrency 4, got %d", cfg.Lint.MaxConcurrency)
	}
	if cfg.Server.RateLimitEnabled {
		t.Error("Expected rate limiting disabled")
	}
	if cfg.Server.RateLimitPerMinute != 600 {
		t.Errorf("Expected rate limit 600/min, got %d", cfg.Server.RateLimitPerMinute)
	}
	if !cfg.Observability.OTelEnabled {
		t.Error("Expected OTel enabled")
	}
	if cfg.Observability.OTelEndpoint != "collector:4317" {
		t.Errorf("Expected OTel endpoint collector:4317, got %s", cfg.Observability.OTelEndpoint)
	}
}

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:            "8080",
				MaxRequestBytes: 1 << 20,
			},
			Lint: LintConfig{
				CacheSize: 10,
				CacheTTL:  time.Minute,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Server.Port = "http" },
			wantErr: true,
		},
		{
			name:    "zero max request bytes",
			mutate:  func(c *Config) { c.Server.MaxRequestBytes = 0 },
			wantErr: true,
		},
		{
			name: "rate limiting enabled with zero rate",
			mutate: func(c *Config) {
				c.Server.RateLimitEnabled = true
				c.Server.RateLimitPerMinute = 0
			},
			wantErr: true,
		},
		{
			name: "rate limiting enabled with negative burst",
			mutate: func(c *Config) {
				c.Server.RateLimitEnabled = true
				c.Server.RateLimitPerMinute = 120
				c.Server.RateLimitBurst = -1
			},
			wantErr: true,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Lint.MaxConcurrency = -1 },
			wantErr: true,
		},
		{
			name:    "zero cache size",
			mutate:  func(c *Config) { c.Lint.CacheSize = 0 },
			wantErr: true,
		},
		{
			name:    "zero cache TTL",
			mutate:  func(c *Config) { c.Lint.CacheTTL = 0 },
			wantErr: true,
		},
		{
			name: "otel enabled without endpoint",
			mutate: func(c *Config) {
				c.Observability.OTelEnabled = true
				c.Observability.OTelEndpoint = ""
			},
			wantErr: true,
		},
		{
			name: "otel enabled without service name",
			mutate: func(c *Config) {
				c.Observability.OTelEnabled = true
				c.Observability.OTelEndpoint = "collector:4317"
				c.Observability.OTelServiceName = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
