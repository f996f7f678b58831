package config

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pdrpinto/gridpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridpath.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `server:
  addr: "127.0.0.1:9000"
search:
  diagonal: true
  diagonal_cost: 1.41421356
  max_expansions: 5000
  workers: 2
cache:
  redis_addr: "localhost:6379"
  ttl: "30s"
  prefix: "editor"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", config.Server.Addr)
	assert.True(t, config.Search.Diagonal)
	assert.InDelta(t, 1.41421356, config.Search.DiagonalCost, 1e-9)
	assert.Equal(t, 5000, config.Search.MaxExpansions)
	assert.Equal(t, 2, config.Search.Workers)
	assert.True(t, config.CacheEnabled())
	assert.Equal(t, 30*time.Second, config.CacheTTL())
	assert.Equal(t, "editor", config.Cache.Prefix)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	config, err := Load(writeConfig(t, "search:\n  diagonal: false\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, config.Server.Addr)
	assert.Equal(t, 1.0, config.Search.DiagonalCost)
	assert.Equal(t, 0, config.Search.MaxExpansions)
	assert.Equal(t, runtime.NumCPU(), config.Search.Workers)
	assert.False(t, config.CacheEnabled())
	assert.Equal(t, DefaultCacheTTL, config.CacheTTL())
	assert.Equal(t, DefaultCachePrefix, config.Cache.Prefix)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/gridpath.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	config, err := Load(writeConfig(t, "server: [unclosed\n"))
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		message string
	}{
		{"diagonal cost too high", Config{Search: SearchConfig{DiagonalCost: 2.5}}, "diagonal_cost"},
		{"diagonal cost too low", Config{Search: SearchConfig{DiagonalCost: 0.5}}, "diagonal_cost"},
		{"diagonal cost NaN", Config{Search: SearchConfig{DiagonalCost: math.NaN()}}, "diagonal_cost"},
		{"negative max cells", Config{Search: SearchConfig{MaxCells: -1}}, "max_cells"},
		{"negative expansions", Config{Search: SearchConfig{MaxExpansions: -1}}, "max_expansions"},
		{"negative workers", Config{Search: SearchConfig{Workers: -2}}, "workers"},
		{"bad ttl", Config{Cache: CacheConfig{TTL: "soon"}}, "cache.ttl"},
		{"negative ttl", Config{Cache: CacheConfig{TTL: "-1s"}}, "cache.ttl"},
		{"negative db", Config{Cache: CacheConfig{DB: -1}}, "cache.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDefault(t *testing.T) {
	config := Default()
	assert.Equal(t, DefaultAddr, config.Server.Addr)
	assert.Equal(t, 1.0, config.Search.DiagonalCost)
	assert.Equal(t, gridpath.DefaultMaxCells, config.Search.MaxCells)
}

func TestLoad_RejectsNaNDiagonalCost(t *testing.T) {
	config, err := Load(writeConfig(t, "search:\n  diagonal_cost: .nan\n"))
	require.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "diagonal_cost")
}
