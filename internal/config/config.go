package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/hexgrid/pkg/layout"
)

// Config holds all server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Grid   GridConfig   `yaml:"grid"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	ReadLimit int64  `yaml:"read_limit"` // bytes per client message
}

// GridConfig describes the bounded map served to clients
type GridConfig struct {
	Orientation    layout.Orientation `yaml:"orientation"`
	TileWidth      float64            `yaml:"tile_width"`  // pixels between column centres
	TileHeight     float64            `yaml:"tile_height"` // pixels between row centres
	Columns        int                `yaml:"columns"`
	Rows           int                `yaml:"rows"`
	DefaultTerrain string             `yaml:"default_terrain"`
	MaxQueryRadius int                `yaml:"max_query_radius"`
}

// AuthConfig holds token authentication settings. An empty secret disables auth.
type AuthConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadLimit == 0 {
		cfg.Server.ReadLimit = 8192
	}
	// orientation's zero value is flat-top
	if cfg.Grid.TileWidth == 0 {
		cfg.Grid.TileWidth = 42
	}
	if cfg.Grid.TileHeight == 0 {
		cfg.Grid.TileHeight = 30
	}
	if cfg.Grid.Columns == 0 {
		cfg.Grid.Columns = 16
	}
	if cfg.Grid.Rows == 0 {
		cfg.Grid.Rows = 16
	}
	if cfg.Grid.DefaultTerrain == "" {
		cfg.Grid.DefaultTerrain = "plains"
	}
	if cfg.Grid.MaxQueryRadius == 0 {
		cfg.Grid.MaxQueryRadius = 8
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "hexgrid"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate reports the first setting that cannot be served.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Server.Port < 0 || cfg.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalid, cfg.Server.Port)
	case cfg.Server.ReadLimit < 0:
		return fmt.Errorf("%w: server.read_limit must be positive", ErrInvalid)
	case !cfg.Grid.Orientation.IsValid():
		return fmt.Errorf("%w: grid.orientation %v", ErrInvalid, cfg.Grid.Orientation)
	case cfg.Grid.TileWidth <= 0 || cfg.Grid.TileHeight <= 0:
		return fmt.Errorf("%w: grid tile size %gx%g must be positive", ErrInvalid, cfg.Grid.TileWidth, cfg.Grid.TileHeight)
	case cfg.Grid.Columns < 0 || cfg.Grid.Rows < 0:
		return fmt.Errorf("%w: grid size %dx%d must be positive", ErrInvalid, cfg.Grid.Columns, cfg.Grid.Rows)
	case cfg.Grid.MaxQueryRadius < 0:
		return fmt.Errorf("%w: grid.max_query_radius must be positive", ErrInvalid)
	}
	if _, err := cfg.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Layout returns the pixel layout of the configured grid.
func (g GridConfig) Layout() layout.Layout {
	return layout.New(g.Orientation, g.TileWidth, g.TileHeight)
}

// SlogLevel maps the configured level name onto slog.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
}
