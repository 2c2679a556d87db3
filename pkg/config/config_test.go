package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gostokhos/pkg/config"
	"github.com/sandrolain/gostokhos/pkg/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stokhos.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
seed: 42
cache_size: 64
max_depth: 500
debug: true
extensions: [stats]
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, 500, cfg.MaxDepth)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"stats"}, cfg.Extensions)
	assert.True(t, filepath.IsAbs(cfg.Path))
}

func TestEmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Nil(t, cfg.Seed)
	assert.Zero(t, cfg.CacheSize)
	assert.Empty(t, cfg.Extensions)

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestUnknownFieldsRejected(t *testing.T) {
	_, err := config.Parse(strings.NewReader("seeds: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeds")
}

func TestValidation(t *testing.T) {
	_, err := config.Parse(strings.NewReader("cache_size: -1\nextensions: [nope]\n"))
	require.Error(t, err)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 2)
	assert.Contains(t, err.Error(), "cache_size must be non-negative")
	assert.Contains(t, err.Error(), `unknown extension set "nope"`)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load("")
	assert.ErrorContains(t, err, "config: empty path")

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "config: open")

	_, err = config.Load(writeConfig(t, "seed: [1, 2]\n"))
	assert.ErrorContains(t, err, "parse")
}

func TestEngineOptions(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("seed: 7\ncache_size: 8\nextensions: [stats]\n"))
	require.NoError(t, err)

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)

	a := engine.New(opts...)
	b := engine.New(opts...)
	assert.Equal(t, a.Process("uniform()"), b.Process("uniform()"))
	assert.Equal(t, "OK: median([3, 1, 2]) ==> 2", a.Process("median([3, 1, 2])"))

	_, caching := a.CacheStats()
	assert.True(t, caching)
}
