package artpack

import (
	"context"
	"errors"
	"log/slog"
)

// DefaultPolyfillPath is prepended to every resolved entry unless
// WithPolyfillPath says otherwise.
const DefaultPolyfillPath = "art-webpack/polyfills"

// defaultPatternCacheSize bounds the number of glob validity results kept
// by a Resolver's matcher.
const defaultPatternCacheSize = 256

// Option configures resolution behavior.
type Option func(*resolverConfig) error

// resolverConfig holds all resolution configuration.
type resolverConfig struct {
	keepQuery        bool
	polyfillPath     string
	patternCacheSize int
	matcher          *Matcher

	// logger is the structured logger for debug/warn output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// DefaultOptions returns the options the art CLI resolves with.
func DefaultOptions() []Option {
	return []Option{
		WithPolyfillPath(DefaultPolyfillPath),
		WithPatternCacheSize(defaultPatternCacheSize),
	}
}

// WithKeepQuery keeps the "?query" suffix of manifest keys in entry names.
// By default the suffix is stripped.
func WithKeepQuery(keep bool) Option {
	return func(c *resolverConfig) error {
		c.keepQuery = keep
		return nil
	}
}

// WithPolyfillPath sets the file prepended to every resolved entry.
func WithPolyfillPath(p string) Option {
	return func(c *resolverConfig) error {
		if p == "" {
			return errors.New("polyfill path must not be empty")
		}
		c.polyfillPath = p
		return nil
	}
}

// WithPatternCacheSize bounds the matcher's glob validity cache.
func WithPatternCacheSize(n int) Option {
	return func(c *resolverConfig) error {
		c.patternCacheSize = n
		return nil
	}
}

// WithMatcher shares a Matcher (and its cache) between resolvers.
func WithMatcher(m *Matcher) Option {
	return func(c *resolverConfig) error {
		c.matcher = m
		return nil
	}
}

// WithLogger sets a structured logger for resolution diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "artpack")
//	ResolveEntries(manifest, filters, WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *resolverConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *resolverConfig) validate() error {
	if c.patternCacheSize < 0 {
		return errors.New("pattern cache size must not be negative")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *resolverConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newResolverConfig creates a resolver configuration by applying
// the given options over the defaults and validating the result.
func newResolverConfig(opts ...Option) (*resolverConfig, error) {
	c := &resolverConfig{
		polyfillPath:     DefaultPolyfillPath,
		patternCacheSize: defaultPatternCacheSize,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}
