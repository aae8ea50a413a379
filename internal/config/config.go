// Package config loads quiz configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amadrinan/quiz/internal/quiz"
	"github.com/amadrinan/quiz/internal/store"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the process configuration.
type Config struct {
	// Listen is the TCP address for serve mode, e.g. ":2070".
	Listen string `yaml:"listen"`

	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects and parameterizes the record store backend.
type StoreConfig struct {
	// Backend is one of memory|file|sqlite.
	Backend string `yaml:"backend"`
	// Path is the backing file for the file and sqlite backends.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen: ":2070",
		Store:  StoreConfig{Backend: BackendMemory},
	}
}

// Load reads the YAML file at path (optional: empty or missing path
// yields defaults) and applies environment overrides. A .env file in the
// working directory is loaded first, if present.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // absent .env is fine

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("QUIZ_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("QUIZ_STORE"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("QUIZ_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store backend %q requires a path", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// OpenStore opens the record store selected by the configuration.
func (c Config) OpenStore() (quiz.Store, error) {
	switch c.Store.Backend {
	case BackendFile:
		return store.OpenFile(c.Store.Path)
	case BackendSQLite:
		return store.OpenSQLite(c.Store.Path)
	default:
		return store.NewMemory(), nil
	}
}
