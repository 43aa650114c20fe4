// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      -config=/path/to/config.yaml
//  3. Nothing at all — every field then falls back to its env-default,
//     which reproduces the historical hardcoded paths (students.db,
//     students.html, portfolio.html).
//
// Individual fields can always be overridden with environment variables,
// and a .env file in the working directory is loaded first if present.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers understood by storage.Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Storage   Storage   `yaml:"storage"`
	Output    Output    `yaml:"output"`
	Templates Templates `yaml:"templates"`
	Portfolio Portfolio `yaml:"portfolio"`
}

// Storage selects and configures the student store.
type Storage struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`

	// Path is the SQLite database file.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"students.db"`

	// DSN is the PostgreSQL connection string, only used by the postgres driver.
	DSN string `yaml:"dsn" env:"STORAGE_DSN"`
}

// Output holds where generated HTML documents are written.
type Output struct {
	Students  string `yaml:"students"  env:"OUTPUT_STUDENTS"  env-default:"students.html"`
	Portfolio string `yaml:"portfolio" env:"OUTPUT_PORTFOLIO" env-default:"portfolio.html"`
}

// Templates optionally replaces the embedded HTML templates.
// An empty value means "use the built-in template".
type Templates struct {
	Students  string `yaml:"students"  env:"TEMPLATE_STUDENTS"`
	Portfolio string `yaml:"portfolio" env:"TEMPLATE_PORTFOLIO"`
}

// Portfolio configures where portfolio data comes from.
type Portfolio struct {
	// Source is a YAML file describing the portfolio.
	// Empty means the built-in sample portfolio.
	Source string `yaml:"source" env:"PORTFOLIO_SOURCE"`
}

// configFlag is registered on the default flag set so that both binaries
// accept -config without each declaring it.
var configFlag = flag.String("config", "", "Path to the configuration YAML file")

// Load reads the configuration from path, or from the environment only
// when path is empty, and checks the result.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case, so the error is ignored.
	_ = godotenv.Load()

	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: file does not exist: %s", path)
		}
		// cleanenv.ReadConfig reads the YAML file, then applies env:"..."
		// overrides and env-default values.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad resolves the config path (CONFIG_PATH first, then -config) and
// loads it. It must be called after flag.Parse.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to fatal on failure. If this function returns, the
// config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = *configFlag
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("config: storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("config: storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
