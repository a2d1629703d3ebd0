package radius

import (
	"go.uber.org/zap"

	"github.com/itsatony/go-radius/internal"
)

// Attributes maps attribute names to values for one tag occurrence.
type Attributes = internal.Attributes

// ContentFunc returns the already evaluated body of a container tag.
type ContentFunc = internal.ContentFunc

// TagFunc renders one tag. inner is nil for self-closing tags.
type TagFunc = internal.TagHandler

// MissingTagFunc renders a tag whose name has no registered handler.
type MissingTagFunc func(name string, attrs Attributes, inner ContentFunc) (string, error)

// Resolver gives tags their meaning. The parser asks it for the tag prefix
// once per Parse call and calls RenderTag for every tag, in document order.
type Resolver interface {
	// Prefix returns the tag namespace, e.g. "radius" for <radius:name>.
	Prefix() string

	// RenderTag returns the substitution text for a tag. inner is nil for
	// self-closing tags. Unknown names must fail with an unrecognized tag
	// error (see NewUnrecognizedTagError).
	RenderTag(name string, attrs Attributes, inner ContentFunc) (string, error)
}

// Context is the standard Resolver: a table from tag name to TagFunc with a
// fallback for names that are not in the table.
// It is safe for concurrent use.
type Context struct {
	prefix     string
	registry   *internal.Registry
	missingTag MissingTagFunc
	logger     *zap.Logger
}

// NewContext creates an empty tag context.
// Reads WithPrefix, WithLogger and WithMissingTag.
func NewContext(opts ...Option) *Context {
	cfg := applyOptions(opts)

	missing := cfg.missingTag
	if missing == nil {
		missing = unrecognizedTag
	}

	cfg.logger.Debug(LogMsgContextCreated, zap.String(LogFieldPrefix, cfg.prefix))
	return &Context{
		prefix:     cfg.prefix,
		registry:   internal.NewRegistry(cfg.logger),
		missingTag: missing,
		logger:     cfg.logger,
	}
}

// Prefix returns the tag namespace.
func (c *Context) Prefix() string {
	return c.prefix
}

// Define sets the handler for a tag name, replacing any existing one.
func (c *Context) Define(name string, fn TagFunc) error {
	if err := c.registry.Set(name, fn); err != nil {
		return NewRegistryError(name, err)
	}
	return nil
}

// MustDefine sets a handler and panics if the name or handler is invalid.
func (c *Context) MustDefine(name string, fn TagFunc) {
	if err := c.Define(name, fn); err != nil {
		panic(err)
	}
}

// Register adds a handler for a tag name. If the name is already taken the
// first handler is kept and an error is returned.
func (c *Context) Register(name string, fn TagFunc) error {
	if err := c.registry.Register(name, fn); err != nil {
		return NewRegistryError(name, err)
	}
	return nil
}

// MustRegister adds a handler and panics if registration fails.
func (c *Context) MustRegister(name string, fn TagFunc) {
	if err := c.Register(name, fn); err != nil {
		panic(err)
	}
}

// Has checks if a handler is registered for the given tag name.
func (c *Context) Has(name string) bool {
	return c.registry.Has(name)
}

// List returns all registered tag names in sorted order.
func (c *Context) List() []string {
	return c.registry.List()
}

// Count returns the number of registered tags.
func (c *Context) Count() int {
	return c.registry.Count()
}

// RenderTag dispatches to the handler registered for name, or to the missing
// tag handler.
func (c *Context) RenderTag(name string, attrs Attributes, inner ContentFunc) (string, error) {
	if fn, ok := c.registry.Get(name); ok {
		return fn(attrs, inner)
	}
	return c.missingTag(name, attrs, inner)
}

// WithTag returns a copy of the context with one more handler defined. The
// receiver is not modified.
func (c *Context) WithTag(name string, fn TagFunc) (*Context, error) {
	overlay := &Context{
		prefix:     c.prefix,
		registry:   c.registry.Clone(),
		missingTag: c.missingTag,
		logger:     c.logger,
	}
	if err := overlay.Define(name, fn); err != nil {
		return nil, err
	}
	return overlay, nil
}

func unrecognizedTag(name string, _ Attributes, _ ContentFunc) (string, error) {
	return "", NewUnrecognizedTagError(name)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc struct {
	prefix string
	fn     func(name string, attrs Attributes, inner ContentFunc) (string, error)
}

// NewResolverFunc creates a function-based resolver. An empty prefix means
// DefaultPrefix.
func NewResolverFunc(
	prefix string,
	fn func(name string, attrs Attributes, inner ContentFunc) (string, error),
) *ResolverFunc {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &ResolverFunc{
		prefix: prefix,
		fn:     fn,
	}
}

// Prefix returns the resolver's tag namespace.
func (r *ResolverFunc) Prefix() string {
	return r.prefix
}

// RenderTag calls the wrapped function.
func (r *ResolverFunc) RenderTag(name string, attrs Attributes, inner ContentFunc) (string, error) {
	return r.fn(name, attrs, inner)
}
