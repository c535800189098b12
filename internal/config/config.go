// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"construction-cost/internal/logging"
)

// Environment variables that override file settings
const (
	EnvPort         = "PORT"
	EnvRatesFile    = "CC_RATES_FILE"
	EnvWorkbookFile = "CC_WORKBOOK_FILE"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains web server configuration
	Server ServerConfig `json:"server"`

	// Rates names the files that override the built-in material rates
	Rates RatesConfig `json:"rates"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// RatesConfig locates optional rate sources. Empty paths are skipped.
type RatesConfig struct {
	// StandardsFile is an HCL file with prices, coefficients and plan factors
	StandardsFile string `json:"standards_file,omitempty"`

	// WorkbookFile is an XLSX price sheet (material, unit, cost)
	WorkbookFile string `json:"workbook_file,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default CLI output format
	DefaultFormat string `json:"default_format"`

	// ShowAssumptions prints the assumptions list with each estimate
	ShowAssumptions bool `json:"show_assumptions"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:                   ":5000",
			ReadTimeoutSeconds:     15,
			WriteTimeoutSeconds:    30,
			ShutdownTimeoutSeconds: 10,
		},
		Output: OutputConfig{
			DefaultFormat:   "table",
			ShowAssumptions: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.construction-cost.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".construction-cost.json"
	}
	return filepath.Join(homeDir, ".construction-cost.json")
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadWithEnv loads the file, then a .env file if present, then applies
// environment overrides on top.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	_ = godotenv.Load()
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. lookup is os.LookupEnv
// outside of tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPort); ok && v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			c.Server.Addr = ":" + v
		}
	}
	if v, ok := lookup(EnvRatesFile); ok {
		c.Rates.StandardsFile = v
	}
	if v, ok := lookup(EnvWorkbookFile); ok {
		c.Rates.WorkbookFile = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
