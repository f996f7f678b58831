package config

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/pdrpinto/gridpath"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr        = ":8080"
	DefaultCacheTTL    = 10 * time.Minute
	DefaultCachePrefix = "gridpath"
)

// Config represents the top-level gridpath.yml configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Search SearchConfig `yaml:"search"`
	Cache  CacheConfig  `yaml:"cache"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// SearchConfig configures the movement model and search limits.
type SearchConfig struct {
	Diagonal      bool    `yaml:"diagonal"`
	DiagonalCost  float64 `yaml:"diagonal_cost,omitempty"`  // 1 = uniform (default), 1.41421356 = Euclidean
	MaxExpansions int     `yaml:"max_expansions,omitempty"` // 0 = unlimited
	Workers       int     `yaml:"workers,omitempty"`        // batch fan-out, default NumCPU
	MaxCells      int     `yaml:"max_cells,omitempty"`      // largest accepted cols*rows
}

// CacheConfig configures the Redis path cache. An empty RedisAddr disables it.
type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr,omitempty"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	TTL       string `yaml:"ttl,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

// Validate applies defaults and checks value ranges.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}

	if c.Search.DiagonalCost == 0 {
		c.Search.DiagonalCost = 1
	}
	if math.IsNaN(c.Search.DiagonalCost) || c.Search.DiagonalCost < 1 || c.Search.DiagonalCost > 2 {
		return fmt.Errorf("search.diagonal_cost must be between 1 and 2, got %v", c.Search.DiagonalCost)
	}
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("search.max_expansions must be >= 0 (0 = unlimited), got %d", c.Search.MaxExpansions)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must be >= 0, got %d", c.Search.Workers)
	}
	if c.Search.Workers == 0 {
		c.Search.Workers = runtime.NumCPU()
	}
	if c.Search.MaxCells < 0 {
		return fmt.Errorf("search.max_cells must be >= 0, got %d", c.Search.MaxCells)
	}
	if c.Search.MaxCells == 0 {
		c.Search.MaxCells = gridpath.DefaultMaxCells
	}

	if c.Cache.TTL == "" {
		c.Cache.TTL = DefaultCacheTTL.String()
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	if ttl < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = DefaultCachePrefix
	}
	if c.Cache.DB < 0 {
		return fmt.Errorf("cache.db must be >= 0, got %d", c.Cache.DB)
	}

	return nil
}

// CacheTTL returns the parsed cache TTL. Call after Validate.
func (c *Config) CacheTTL() time.Duration {
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return DefaultCacheTTL
	}
	return ttl
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.Cache.RedisAddr != ""
}

// Load reads, parses and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
