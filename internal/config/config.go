package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Essence holds all configuration for the simulate and autoplay commands.
type Essence struct {
	// Logging
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text or json

	// Game data
	ModulePath       string `yaml:"module_path"`
	SearchConfigPath string `yaml:"search_config_path"`
	Strict           bool   `yaml:"strict"`

	Simulation SimulationConfig `yaml:"simulation"`
	Cache      CacheConfig      `yaml:"cache"`
	Database   DatabaseConfig   `yaml:"database"`
	HTTP       HTTPConfig       `yaml:"http"`
	Autoplay   AutoplayConfig   `yaml:"autoplay"`
}

// SimulationConfig tunes the loadout search.
type SimulationConfig struct {
	Seed       uint64 `yaml:"seed"`
	ExportPath string `yaml:"export_path"` // empty disables xlsx export
}

// CacheConfig selects where search results are cached.
type CacheConfig struct {
	Backend string        `yaml:"backend"`  // memory or postgres
	KeyMode string        `yaml:"key_mode"` // content or legacy
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// HTTPConfig configures the inspection server. An empty address disables it.
type HTTPConfig struct {
	ListenAddress string `yaml:"listen_address"`
}

// AutoplayConfig configures the headless game loop.
type AutoplayConfig struct {
	Tick      time.Duration `yaml:"tick"`
	Duration  time.Duration `yaml:"duration"`   // simulated time; zero runs until interrupted
	Realtime  bool          `yaml:"realtime"`   // pace ticks with the wall clock
	ZoneLevel int           `yaml:"zone_level"` // zero follows the player level
}

// Default returns Essence config with sensible defaults.
func Default() Essence {
	return Essence{
		LogLevel:         "info",
		LogFormat:        "text",
		ModulePath:       "data/module.json",
		SearchConfigPath: "data/search.json",
		Strict:           true,
		Simulation: SimulationConfig{
			Seed: 1,
		},
		Cache: CacheConfig{
			Backend: "memory",
			KeyMode: "content",
			Size:    256,
			TTL:     time.Hour,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "essence",
			Password: "essence",
			DBName:   "essence",
			SSLMode:  "disable",
		},
		Autoplay: AutoplayConfig{
			Tick:     40 * time.Millisecond,
			Duration: 10 * time.Minute,
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Essence, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Essence) validate() error {
	switch c.Cache.Backend {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	return nil
}

// ParseLevel maps a config log level to slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger builds the process logger from the logging fields.
func (c Essence) NewLogger() *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
