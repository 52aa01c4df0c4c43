// Package config loads the demo server's m4d.json configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "m4d.json"

	// DefaultPort is the default demo server port.
	DefaultPort = 3000

	// DefaultHost is the default demo server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is the default Prometheus endpoint path.
	DefaultMetricsPath = "/metrics"
)

// Navigation modes accepted by the "mode" field.
const (
	// ModeAuto picks the mode from the attached page's history API support.
	ModeAuto = "auto"

	// ModeFragment forces fragment navigation.
	ModeFragment = "fragment"

	// ModePath forces path navigation.
	ModePath = "path"
)

// Config represents the complete m4d.json configuration.
type Config struct {
	// Name is the application name, shown in the demo page title.
	Name string `json:"name,omitempty"`

	// Host is the listen host.
	Host string `json:"host,omitempty"`

	// Port is the listen port.
	Port int `json:"port,omitempty"`

	// Mode selects the navigation mode: "auto" (follow the browser's
	// history API support), "fragment", or "path".
	Mode string `json:"mode,omitempty"`

	// IgnoreClick disables document-wide click interception.
	IgnoreClick bool `json:"ignoreClick,omitempty"`

	// Metrics enables the Prometheus endpoint.
	Metrics bool `json:"metrics,omitempty"`

	// MetricsPath is the Prometheus endpoint path.
	MetricsPath string `json:"metricsPath,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Name:        "m4d-router",
		Host:        DefaultHost,
		Port:        DefaultPort,
		Mode:        ModeAuto,
		MetricsPath: DefaultMetricsPath,
	}
}

// Load reads ConfigFileName from dir. A missing file yields the defaults;
// a malformed one is an error. Unset fields fall back to their defaults.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", ConfigFileName, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", ConfigFileName, err)
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = DefaultMetricsPath
	}
	switch cfg.Mode {
	case "":
		cfg.Mode = ModeAuto
	case ModeAuto, ModeFragment, ModePath:
	default:
		return nil, fmt.Errorf("config: unknown mode %q (want %s, %s, or %s)",
			cfg.Mode, ModeAuto, ModeFragment, ModePath)
	}
	return cfg, nil
}

// FragmentOverride reports whether the mode forces fragment or path
// navigation. forced is false for ModeAuto, where the host decides.
func (c *Config) FragmentOverride() (useFragment, forced bool) {
	switch c.Mode {
	case ModeFragment:
		return true, true
	case ModePath:
		return false, true
	default:
		return false, false
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
