// Copyright (c) 2025 DocuAI
// SPDX-License-Identifier: MIT

// Package config provides configuration loading and management for the
// DocuAI client.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.docuai/config.toml
//   - ~/.docuai/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/docuai/docuai-cli/internal/rag"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete DocuAI client configuration.
type Config struct {
	// Service configuration (the DocuAI backend).
	Service ServiceConfig `toml:"service" json:"service"`

	// Storage configuration (where chat history lives).
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Export configuration.
	Export ExportConfig `toml:"export" json:"export"`
}

// ServiceConfig configures the connection to the DocuAI service.
type ServiceConfig struct {
	// URL is the service root, e.g. "http://localhost:8000".
	URL string `toml:"url" json:"url"`
	// TimeoutSecs bounds each request in seconds.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RequestsPerSecond throttles outbound calls. 0 uses the default;
	// negative disables throttling.
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
}

// StorageConfig configures chat history persistence.
type StorageConfig struct {
	// Backend selects the persistence backend: "file" or "sqlite".
	Backend string `toml:"backend" json:"backend"`
	// Dir is the data directory (empty = the config directory).
	Dir string `toml:"dir" json:"dir"`
}

// ExportConfig configures transcript exports.
type ExportConfig struct {
	// OutputDir is where exported transcripts are written.
	OutputDir string `toml:"output_dir" json:"output_dir"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			URL:               rag.DefaultBaseURL,
			TimeoutSecs:       int(rag.DefaultTimeout / time.Second),
			RequestsPerSecond: rag.DefaultRequestsPerSecond,
		},
		Storage: StorageConfig{
			Backend: "file",
			Dir:     "",
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the DocuAI configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".docuai"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DataDir resolves the directory chat history is stored in.
func (c *Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	return ConfigDir()
}

// ServiceTimeout returns the request timeout as a duration.
func (c *Config) ServiceTimeout() time.Duration {
	return time.Duration(c.Service.TimeoutSecs) * time.Second
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s). Tries TOML first, then
// JSON, and falls back to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}
	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. JSON files are detected by extension; everything else is
// treated as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config: %w", err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# DocuAI client configuration file")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// SetDefaults fills in any missing or zero-value fields with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Service.URL == "" {
		c.Service.URL = defaults.Service.URL
	}
	if c.Service.TimeoutSecs == 0 {
		c.Service.TimeoutSecs = defaults.Service.TimeoutSecs
	}
	if c.Service.RequestsPerSecond == 0 {
		c.Service.RequestsPerSecond = defaults.Service.RequestsPerSecond
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = defaults.Export.OutputDir
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	if _, err := url.Parse(c.Service.URL); err != nil {
		return ValidationError{
			Field:   "service.url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		}
	}
	if !strings.HasPrefix(c.Service.URL, "http://") && !strings.HasPrefix(c.Service.URL, "https://") {
		return ValidationError{
			Field:   "service.url",
			Message: fmt.Sprintf("must start with http:// or https://, got %q", c.Service.URL),
		}
	}

	if c.Service.TimeoutSecs < 0 {
		return ValidationError{
			Field:   "service.timeout_secs",
			Message: "must be non-negative",
		}
	}

	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("must be \"file\" or \"sqlite\", got %q", c.Storage.Backend),
		}
	}

	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - DOCUAI_SERVICE_URL: overrides service.url
//   - DOCUAI_TIMEOUT_SECS: overrides service.timeout_secs
//   - DOCUAI_STORAGE_BACKEND: overrides storage.backend
//   - DOCUAI_STORAGE_DIR: overrides storage.dir
//   - DOCUAI_EXPORT_DIR: overrides export.output_dir
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("DOCUAI_SERVICE_URL"); u != "" {
		c.Service.URL = u
	}
	if secs := os.Getenv("DOCUAI_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			c.Service.TimeoutSecs = n
		}
	}
	if backend := os.Getenv("DOCUAI_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if dir := os.Getenv("DOCUAI_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if dir := os.Getenv("DOCUAI_EXPORT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}
}
