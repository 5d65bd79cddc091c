package grok

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/loggrok/grok/pkg/grok/engine"
)

// MaxRecursion is the default ceiling on expansion iterations. One iteration
// resolves one distinct placeholder text, so the ceiling bounds both cyclic
// references and pathologically deep definition chains.
const MaxRecursion = 1024

// Option configures a Grok using the functional options pattern.
type Option func(*config)

type config struct {
	engine       engine.Engine
	logger       *slog.Logger
	maxRecursion int
	matchTimeout time.Duration
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func defaultConfig() *config {
	return &config{
		maxRecursion: MaxRecursion,
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.engine == nil {
		cfg.engine = engine.NewRegexp2(cfg.matchTimeout)
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger
	}
	return cfg
}

func (c *config) validate() error {
	if c.maxRecursion <= 0 {
		return fmt.Errorf("max recursion must be positive, got %d", c.maxRecursion)
	}
	if c.matchTimeout < 0 {
		return fmt.Errorf("match timeout must be non-negative, got %v", c.matchTimeout)
	}
	return nil
}

// WithEngine sets the regex engine used for compiled patterns.
// Default: regexp2 (see engine.Default). A nil engine keeps the default.
func WithEngine(e engine.Engine) Option {
	return func(c *config) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithLogger sets a logger for compile diagnostics (debug level).
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxRecursion overrides the expansion ceiling (default MaxRecursion).
func WithMaxRecursion(n int) Option {
	return func(c *config) {
		c.maxRecursion = n
	}
}

// WithMatchTimeout bounds each match of the default regexp2 engine. A match
// that times out is reported as no match. It has no effect when WithEngine
// supplies an engine; configure that engine directly instead.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *config) {
		c.matchTimeout = d
	}
}
