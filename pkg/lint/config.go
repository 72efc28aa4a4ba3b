package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/httplint/pkg/diag"
)

// Config represents the linting configuration. The JSON tags mirror the
// YAML ones so the lint API accepts the same shape as httplint.yaml.
type Config struct {
	Version string    `yaml:"version" json:"version,omitempty"`
	Lint    LintRules `yaml:"lint" json:"lint"`
}

// LintRules contains rule configuration
type LintRules struct {
	// Disable lists diagnostic kinds to drop entirely.
	Disable []string `yaml:"disable" json:"disable,omitempty"`
	// Severity overrides the default severity per kind.
	Severity map[string]string `yaml:"severity" json:"severity,omitempty"`
	// Ignore lists path globs excluded from file discovery.
	Ignore []string `yaml:"ignore" json:"ignore,omitempty"`
	// ImportPaths lists directories searched for proto imports.
	ImportPaths []string `yaml:"import_paths" json:"import_paths,omitempty"`
	// MaxConcurrency bounds parallel per-file checking. Zero means one
	// worker per CPU.
	MaxConcurrency int `yaml:"max_concurrency" json:"max_concurrency,omitempty"`
}

// DefaultConfig returns default linting configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "v1",
		Lint: LintRules{
			Disable:  make([]string, 0),
			Severity: make(map[string]string),
			Ignore:   []string{"vendor/**", "third_party/**"},
		},
	}
}

// Validate checks that config values reference known kinds and severities
func (c *Config) Validate() error {
	for _, kind := range c.Lint.Disable {
		if !diag.IsKnownKind(diag.Kind(kind)) {
			return fmt.Errorf("lint: unknown kind %q in disable list", kind)
		}
	}
	for kind, severity := range c.Lint.Severity {
		if !diag.IsKnownKind(diag.Kind(kind)) {
			return fmt.Errorf("lint: unknown kind %q in severity overrides", kind)
		}
		switch diag.Severity(severity) {
		case diag.SeverityError, diag.SeverityWarning, diag.SeverityInfo:
		default:
			return fmt.Errorf("lint: unknown severity %q for kind %q", severity, kind)
		}
	}
	return nil
}

// Disabled reports whether a kind is switched off
func (c *Config) Disabled(kind diag.Kind) bool {
	for _, disabled := range c.Lint.Disable {
		if diag.Kind(disabled) == kind {
			return true
		}
	}
	return false
}

// SeverityFor returns the configured severity for a kind, falling back to
// the diagnostic's own severity
func (c *Config) SeverityFor(kind diag.Kind, fallback diag.Severity) diag.Severity {
	if override, ok := c.Lint.Severity[string(kind)]; ok {
		return diag.Severity(override)
	}
	return fallback
}

// Ignored reports whether a path matches any ignore glob. Globs match
// against the full relative path; a trailing "/**" ignores the whole
// subtree including the directory itself.
func (c *Config) Ignored(path string) bool {
	clean := filepath.ToSlash(path)
	for _, pattern := range c.Lint.Ignore {
		if matchGlob(pattern, clean) {
			return true
		}
	}
	return false
}

// matchGlob supports the "**" suffix for subtree matches on top of
// filepath.Match semantics.
func matchGlob(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/**") {
		dir := strings.TrimSuffix(pattern, "/**")
		return path == dir || strings.HasPrefix(path, dir+"/")
	}
	ok, err := filepath.Match(pattern, path)
	return err == nil && ok
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigFromDir searches for a config file in the directory and
// returns the default configuration when none exists
func LoadConfigFromDir(dir string) (*Config, error) {
	configNames := []string{"httplint.yaml", "httplint.yml", ".httplint.yaml", ".httplint.yml"}

	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	return DefaultConfig(), nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
