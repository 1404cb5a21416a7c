package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `envPrefix:"SERVER_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`
	Graph   GraphConfig   `envPrefix:"GRAPH_"`
	Logging LoggingConfig `envPrefix:"LOG_"`
	Seed    SeedConfig    `envPrefix:"SEED_"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `env:"HOST" envDefault:"0.0.0.0"`
	Port              int           `env:"PORT" envDefault:"8080"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOriginsCSV string        `env:"ALLOWED_ORIGINS"`
}

// StorageConfig selects the durable key-value namespace backing the persisted collections.
type StorageConfig struct {
	Backend string `env:"BACKEND" envDefault:"file"` // memory|file|sqlite|bbolt|neo4j
	Path    string `env:"PATH" envDefault:"data"`
}

// GraphConfig describes connectivity to the graph database used by the neo4j storage backend.
type GraphConfig struct {
	URI            string `env:"URI"`
	Database       string `env:"DATABASE"`
	Username       string `env:"USERNAME"`
	Password       string `env:"PASSWORD"`
	MaxConnections int    `env:"MAX_CONNECTIONS" envDefault:"10"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `env:"LEVEL" envDefault:"info"`
	Format        string `env:"FORMAT" envDefault:"text"` // text|json
	IncludeCaller bool   `env:"INCLUDE_CALLER"`
}

// SeedConfig tunes the default data used when a slot is absent or corrupt.
type SeedConfig struct {
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`
}

// Storage backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBolt   = "bbolt"
	BackendNeo4j  = "neo4j"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints the env tags cannot express.
func (c Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.HTTP.Port)
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite, BackendBolt:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("STORAGE_PATH is required for the %s backend", c.Storage.Backend)
		}
	case BackendNeo4j:
		if c.Graph.URI == "" {
			return fmt.Errorf("GRAPH_URI is required for the %s backend", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// AllowedOrigins splits the CORS origin list, dropping blanks.
func (c HTTPConfig) AllowedOrigins() []string {
	if c.AllowedOriginsCSV == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(c.AllowedOriginsCSV, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
