// Package config loads server configuration from an optional .env file, an
// optional YAML file and environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

// Config holds all configuration for the canteen server.
type Config struct {
	Port     int           `yaml:"port"`
	LogLevel string        `yaml:"log_level"`
	Storage  StorageConfig `yaml:"storage"`

	// PublicURL is the externally reachable base URL used in the customer QR code.
	PublicURL string `yaml:"public_url"`

	// SeedMenu writes a default menu into a store that has never had one.
	SeedMenu bool `yaml:"seed_menu"`
}

// StorageConfig selects and parameterises the persistence backend.
type StorageConfig struct {
	Backend     string `yaml:"backend"`
	DataDir     string `yaml:"data_dir"`
	DBPath      string `yaml:"db_path"`
	DatabaseURL string `yaml:"database_url"`
	RedisAddr   string `yaml:"redis_addr"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:     3000,
		LogLevel: "info",
		Storage: StorageConfig{
			Backend: StorageFile,
			DataDir: "./data",
			DBPath:  "./data/canteen.db",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path falls back to $CONFIG_FILE, and no file at all is fine.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("SEED_MENU"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_MENU %q: %w", v, err)
		}
		cfg.SeedMenu = seed
	}

	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.PublicURL, "PUBLIC_URL")
	setString(&cfg.Storage.Backend, "STORAGE")
	setString(&cfg.Storage.DataDir, "DATA_DIR")
	setString(&cfg.Storage.DBPath, "DB_PATH")
	setString(&cfg.Storage.DatabaseURL, "DATABASE_URL")
	setString(&cfg.Storage.RedisAddr, "REDIS_ADDR")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case StorageFile:
		if c.Storage.DataDir == "" {
			return errors.New("storage.data_dir is required for the file backend")
		}
	case StorageSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("storage.db_path is required for the sqlite backend")
		}
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("storage.database_url (DATABASE_URL) is required for the postgres backend")
		}
	case StorageRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("storage.redis_addr (REDIS_ADDR) is required for the redis backend")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
