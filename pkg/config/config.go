// Package config loads and persists the Redwood configuration file.
// Configuration is JSON on disk, loaded once at startup, and immutable for
// the process lifetime; on first run a default file is written so the user
// has something to edit.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultPath is the configuration file location relative to the working
// directory.
const DefaultPath = "config.json"

// ErrNoReference indicates that no usable reference coordinate exists:
// automatic location is unavailable (disabled or failed) and no manual
// coordinate is configured. A dashboard with no reference point has no
// purpose, so this error is fatal at startup.
var ErrNoReference = errors.New("no reference coordinate: automatic location unavailable and no manual coordinate configured")

// Config represents the complete application configuration.
type Config struct {
	Location LocationConfig `json:"location"`
	API      APIConfig      `json:"api"`
	UI       UIConfig       `json:"ui"`
	Logging  LoggingConfig  `json:"logging"`
}

// LocationConfig selects the reference coordinate and the detection radius.
type LocationConfig struct {
	// AutoLocate enables IP geolocation for the reference point. When it
	// fails, or when AutoLocate is false, the manual coordinate is used.
	AutoLocate bool `json:"auto_locate"`

	// ManualLatitude in decimal degrees (-90 to +90). nil means not
	// configured.
	ManualLatitude *float64 `json:"manual_latitude,omitempty"`

	// ManualLongitude in decimal degrees (-180 to +180). nil means not
	// configured.
	ManualLongitude *float64 `json:"manual_longitude,omitempty"`

	// DetectionRadiusKM is how far out from the reference point aircraft
	// are considered "nearby", in kilometers.
	DetectionRadiusKM float64 `json:"detection_radius_km"`
}

// APIConfig contains flight-data provider settings.
type APIConfig struct {
	// BaseURL overrides the OpenSky API endpoint. Empty uses the default.
	BaseURL string `json:"base_url,omitempty"`

	// PollIntervalSeconds is how often to refresh aircraft data.
	PollIntervalSeconds int `json:"poll_interval_seconds"`

	// TimeoutSeconds bounds a single fetch. 0 uses the client default.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// UIConfig contains display defaults.
type UIConfig struct {
	// DefaultView is the view shown at startup: "dashboard" or "spotter".
	DefaultView string `json:"default_view"`
}

// LoggingConfig contains file log sink settings. The log is a rotating file
// rather than stderr so it never fights the TUI for the terminal.
type LoggingConfig struct {
	// File is the log file path.
	File string `json:"file"`

	// Level is the minimum level: "debug", "info", "warn", "error".
	Level string `json:"level"`

	// MaxSizeMB is the rotation threshold per file.
	MaxSizeMB int `json:"max_size_mb"`

	// MaxBackups is how many rotated files to keep.
	MaxBackups int `json:"max_backups"`
}

// HasManualCoordinate reports whether both manual components are configured.
func (l LocationConfig) HasManualCoordinate() bool {
	return l.ManualLatitude != nil && l.ManualLongitude != nil
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, the default configuration is returned and
// written to path so the user can customize it on the next run. A file that
// exists but fails to parse is an error, not silently replaced.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	return &cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults. The manual
// coordinate defaults to downtown San Francisco so the dashboard still works
// when geolocation is unreachable.
func DefaultConfig() *Config {
	lat := 37.7749
	lon := -122.4194

	return &Config{
		Location: LocationConfig{
			AutoLocate:        true,
			ManualLatitude:    &lat,
			ManualLongitude:   &lon,
			DetectionRadiusKM: 50.0,
		},
		API: APIConfig{
			PollIntervalSeconds: 30,
			TimeoutSeconds:      10,
		},
		UI: UIConfig{
			DefaultView: "dashboard",
		},
		Logging: LoggingConfig{
			File:       "logs/redwood.log",
			Level:      "info",
			MaxSizeMB:  32,
			MaxBackups: 3,
		},
	}
}

// Validate checks the invariants the rest of the application relies on.
// A nil manual coordinate is legal here; whether a reference point can be
// resolved at all is decided at startup, not at parse time.
func (c *Config) Validate() error {
	if c.Location.DetectionRadiusKM <= 0 {
		return fmt.Errorf("detection_radius_km must be > 0, got %g", c.Location.DetectionRadiusKM)
	}
	if c.API.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll_interval_seconds must be > 0, got %d", c.API.PollIntervalSeconds)
	}
	if lat := c.Location.ManualLatitude; lat != nil && (*lat < -90 || *lat > 90) {
		return fmt.Errorf("manual_latitude must be in [-90, 90], got %g", *lat)
	}
	if lon := c.Location.ManualLongitude; lon != nil && (*lon < -180 || *lon > 180) {
		return fmt.Errorf("manual_longitude must be in [-180, 180], got %g", *lon)
	}
	if (c.Location.ManualLatitude == nil) != (c.Location.ManualLongitude == nil) {
		return errors.New("manual_latitude and manual_longitude must be configured together")
	}
	switch c.UI.DefaultView {
	case "", "dashboard", "spotter":
	default:
		return fmt.Errorf("default_view must be %q or %q, got %q", "dashboard", "spotter", c.UI.DefaultView)
	}
	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to the
// config. Handy for containerized runs where editing the file is awkward.
func (c *Config) applyEnvironmentOverrides() {
	if level := os.Getenv("REDWOOD_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if baseURL := os.Getenv("REDWOOD_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if radius := os.Getenv("REDWOOD_DETECTION_RADIUS_KM"); radius != "" {
		if val, err := strconv.ParseFloat(radius, 64); err == nil {
			c.Location.DetectionRadiusKM = val
		}
	}
	if interval := os.Getenv("REDWOOD_POLL_INTERVAL_SECONDS"); interval != "" {
		if val, err := strconv.Atoi(interval); err == nil {
			c.API.PollIntervalSeconds = val
		}
	}
}
