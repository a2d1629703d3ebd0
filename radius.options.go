package radius

import (
	"io"

	"go.uber.org/zap"
)

// Option is a functional option for configuring a Context, Parser or Engine.
// Each constructor reads the settings that apply to it.
type Option func(*config)

// config holds the internal configuration.
type config struct {
	prefix          string
	logger          *zap.Logger
	missingTag      MissingTagFunc
	storage         DocumentStorage
	maxSnippetDepth int
	definitions     []io.Reader
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		prefix:          DefaultPrefix,
		maxSnippetDepth: DefaultMaxSnippetDepth,
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// WithPrefix sets the tag namespace.
// Default: "radius"
func WithPrefix(prefix string) Option {
	return func(c *config) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithLogger sets the logger.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMissingTag sets the handler called for tag names that have no handler.
// Default: fail with an unrecognized tag error.
func WithMissingTag(fn MissingTagFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.missingTag = fn
		}
	}
}

// WithStorage sets the document storage used by Engine.Render and snippets.
func WithStorage(storage DocumentStorage) Option {
	return func(c *config) {
		c.storage = storage
	}
}

// WithMaxSnippetDepth bounds how deeply snippets may include snippets.
// Use 0 for unlimited depth.
// Default: 16
func WithMaxSnippetDepth(depth int) Option {
	return func(c *config) {
		c.maxSnippetDepth = depth
	}
}

// WithDefinitions loads YAML tag definitions from r when the engine is built.
// May be given more than once; later definitions replace earlier ones.
func WithDefinitions(r io.Reader) Option {
	return func(c *config) {
		c.definitions = append(c.definitions, r)
	}
}
