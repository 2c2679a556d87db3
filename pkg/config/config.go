// Package config loads engine settings from a YAML file.
//
//	seed: 42
//	cache_size: 512
//	max_depth: 5000
//	debug: false
//	extensions: [stats]
//
// Every field is optional and an empty file yields the defaults. Unknown
// fields are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandrolain/gostokhos/pkg/engine"
	"github.com/sandrolain/gostokhos/pkg/ext"
)

// Config is the parsed configuration file.
type Config struct {
	// Path is the absolute path the config was loaded from, if any.
	Path string `yaml:"-"`

	// Seed makes runs reproducible; nil draws a random seed.
	Seed       *uint64  `yaml:"seed"`
	CacheSize  int      `yaml:"cache_size"`
	MaxDepth   int      `yaml:"max_depth"`
	Debug      bool     `yaml:"debug"`
	Extensions []string `yaml:"extensions"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load parses and validates the config file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// Parse decodes and validates a config document.
func Parse(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and extension names.
func (c *Config) Validate() error {
	var issues []string
	if c.CacheSize < 0 {
		issues = append(issues, fmt.Sprintf("cache_size must be non-negative, got %d", c.CacheSize))
	}
	if c.MaxDepth < 0 {
		issues = append(issues, fmt.Sprintf("max_depth must be non-negative, got %d", c.MaxDepth))
	}
	for _, name := range c.Extensions {
		if _, err := ext.Lookup(name); err != nil {
			issues = append(issues, err.Error())
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// EngineOptions converts the config into engine options. A zero
// cache_size leaves the statement cache disabled.
func (c *Config) EngineOptions() ([]engine.Option, error) {
	var opts []engine.Option
	if c.Seed != nil {
		opts = append(opts, engine.WithSeed(*c.Seed))
	}
	if c.CacheSize > 0 {
		opts = append(opts, engine.WithCaching(true), engine.WithCacheSize(c.CacheSize))
	}
	if c.MaxDepth > 0 {
		opts = append(opts, engine.WithMaxDepth(c.MaxDepth))
	}
	if c.Debug {
		opts = append(opts, engine.WithDebug(true))
	}
	if len(c.Extensions) > 0 {
		defs, err := ext.Lookup(c.Extensions...)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, engine.WithFunctions(defs...))
	}
	return opts, nil
}
