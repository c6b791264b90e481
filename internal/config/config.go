// Package config loads wordcliques settings from an optional YAML file with
// WC_* environment overrides on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wisepythagoras/wordcliques/internal/clique"
	apperr "github.com/wisepythagoras/wordcliques/internal/errors"
)

type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Cache   CacheConfig   `yaml:"cache"`
	Store   StoreConfig   `yaml:"store"`
}

type InputConfig struct {
	WordFile string `yaml:"wordFile"`
}

// OutputConfig controls where results go. "-" means stdout.
type OutputConfig struct {
	File string `yaml:"file"`
	// ListOnly writes the accepted word groups instead of searching.
	ListOnly bool `yaml:"listOnly"`
}

type SearchConfig struct {
	Workers int         `yaml:"workers"`
	Mode    clique.Mode `yaml:"mode"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig names a node-exporter textfile written after each run.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// CacheConfig holds the Redis result cache settings.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// StoreConfig points at the SQLite database results are recorded in. An
// empty path disables the store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperr.Newf(apperr.ErrInvalidInput, apperr.ExitUsage, "parsing config file %s: %v", path, err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func Default() *Config {
	return &Config{
		Output: OutputConfig{
			File: "results.txt",
		},
		Search: SearchConfig{
			Workers: runtime.NumCPU(),
			Mode:    clique.ModeExhaustive,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{
			Addr:   "localhost:6379",
			Prefix: "wordcliques:",
			TTL:    24 * time.Hour,
		},
	}
}

// Validate checks the settings a run cannot proceed without.
func (c *Config) Validate() error {
	if c.Input.WordFile == "" {
		return apperr.New(apperr.ErrInvalidInput, apperr.ExitUsage, "a word file is required: --word-file path/to/word/file")
	}

	if c.Output.File == "" {
		return apperr.New(apperr.ErrInvalidInput, apperr.ExitUsage, "an output file is required")
	}

	if c.Search.Workers < 1 {
		return apperr.Newf(apperr.ErrInvalidInput, apperr.ExitUsage, "workers must be at least 1, got %d", c.Search.Workers)
	}

	mode, err := clique.ParseMode(string(c.Search.Mode))
	if err != nil {
		return apperr.New(apperr.ErrInvalidInput, apperr.ExitUsage, err.Error())
	}

	c.Search.Mode = mode

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return apperr.Newf(apperr.ErrInvalidInput, apperr.ExitUsage, "unknown log format %q", c.Logging.Format)
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return apperr.New(apperr.ErrInvalidInput, apperr.ExitUsage, "cache enabled without an address")
	}

	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WC_WORD_FILE"); v != "" {
		cfg.Input.WordFile = v
	}

	if v := os.Getenv("WC_OUTPUT_FILE"); v != "" {
		cfg.Output.File = v
	}

	if v := os.Getenv("WC_SEARCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.Workers = n
		}
	}

	if v := os.Getenv("WC_SEARCH_MODE"); v != "" {
		cfg.Search.Mode = clique.Mode(v)
	}

	if v := os.Getenv("WC_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("WC_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("WC_METRICS_FILE"); v != "" {
		cfg.Metrics.File = v
	}

	if v := os.Getenv("WC_CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
		cfg.Cache.Enabled = true
	}

	if v := os.Getenv("WC_CACHE_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}

	if v := os.Getenv("WC_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		}
	}

	if v := os.Getenv("WC_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
}
