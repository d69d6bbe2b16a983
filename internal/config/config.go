// Package config handles global configuration for citefetch.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the global configuration stored in
// $XDG_CONFIG_HOME/citefetch/config.yml. Environment variables override
// file values; defaults fill whatever remains.
type Config struct {
	APIBase     string `yaml:"api_base,omitempty"`    // citation-graph API base URL
	DOIBase     string `yaml:"doi_base,omitempty"`    // content-negotiation resolver base URL
	Mailto      string `yaml:"mailto,omitempty"`      // contact address sent in the User-Agent
	OCToken     string `yaml:"oc_token,omitempty"`    // OpenCitations access token
	CachePath   string `yaml:"cache_path,omitempty"`  // SQLite metadata cache location
	Concurrency int    `yaml:"concurrency,omitempty"` // metadata fetch workers
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citefetch"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// CacheFile is the default cache database name.
	CacheFile = "csl.db"

	// DefaultConcurrency is the metadata fetch worker count.
	DefaultConcurrency = 2
)

// Path returns the global config file path, respecting XDG_CONFIG_HOME.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultCachePath returns the cache database path, respecting
// XDG_CACHE_HOME.
func DefaultCachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, ConfigDir, CacheFile)
}

// Load reads the config file, applies environment overrides, and fills
// defaults. A missing file is not an error.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// First run; env and defaults apply.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CITEFETCH_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv("CITEFETCH_DOI_BASE"); v != "" {
		cfg.DOIBase = v
	}
	if v := os.Getenv("CITEFETCH_MAILTO"); v != "" {
		cfg.Mailto = v
	}
	if v := os.Getenv("CITEFETCH_OC_TOKEN"); v != "" {
		cfg.OCToken = v
	}
	if v := os.Getenv("CITEFETCH_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("CITEFETCH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.CachePath == "" {
		cfg.CachePath = DefaultCachePath()
	}
}

// Save writes the config file, creating its directory as needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
