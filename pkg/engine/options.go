package engine

import (
	"log/slog"

	"github.com/sandrolain/gostokhos/pkg/functions"
)

// Options configures an Engine.
type Options struct {
	// Seed makes random draws reproducible when Seeded is true.
	Seed   uint64
	Seeded bool
	// Caching enables the parsed-statement cache.
	Caching bool
	// CacheSize is the statement cache capacity.
	CacheSize int
	// MaxDepth limits evaluation recursion depth; 0 keeps the evaluator default.
	MaxDepth int
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
	// Functions are registered on top of the builtin catalog.
	Functions []functions.Def
}

// Option configures an Engine.
type Option func(*Options)

// WithSeed seeds the engine's random source.
func WithSeed(seed uint64) Option {
	return func(opts *Options) {
		opts.Seed = seed
		opts.Seeded = true
	}
}

// WithCaching enables or disables the parsed-statement cache.
func WithCaching(enabled bool) Option {
	return func(opts *Options) {
		opts.Caching = enabled
	}
}

// WithCacheSize sets the statement cache capacity.
func WithCacheSize(size int) Option {
	return func(opts *Options) {
		opts.CacheSize = size
	}
}

// WithMaxDepth sets the maximum evaluation recursion depth.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = depth
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) Option {
	return func(opts *Options) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithFunctions registers additional functions. A function whose name
// matches a builtin replaces it.
func WithFunctions(defs ...functions.Def) Option {
	return func(opts *Options) {
		opts.Functions = append(opts.Functions, defs...)
	}
}
