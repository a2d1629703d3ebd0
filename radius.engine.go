package radius

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Engine bundles a tag Context, a Parser over it and an optional document
// storage. It is the main entry point for most callers.
type Engine struct {
	context         *Context
	parser          *Parser
	storage         DocumentStorage
	maxSnippetDepth int
	logger          *zap.Logger
}

// New creates an Engine. Definitions given with WithDefinitions are loaded
// before New returns.
func New(opts ...Option) (*Engine, error) {
	cfg := applyOptions(opts)

	tagCtx := NewContext(opts...)
	for _, r := range cfg.definitions {
		if err := tagCtx.LoadDefinitions(r); err != nil {
			return nil, err
		}
	}

	cfg.logger.Debug(LogMsgEngineCreated,
		zap.String(LogFieldPrefix, cfg.prefix),
		zap.Bool(LogFieldStorage, cfg.storage != nil))

	return &Engine{
		context:         tagCtx,
		parser:          NewParser(tagCtx, WithLogger(cfg.logger)),
		storage:         cfg.storage,
		maxSnippetDepth: cfg.maxSnippetDepth,
		logger:          cfg.logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Context returns the engine's tag context.
func (e *Engine) Context() *Context {
	return e.context
}

// Storage returns the configured document storage, or nil.
func (e *Engine) Storage() DocumentStorage {
	return e.storage
}

// Define sets the handler for a tag name, replacing any existing one.
func (e *Engine) Define(name string, fn TagFunc) error {
	return e.context.Define(name, fn)
}

// Register adds a handler for a tag name that is not yet taken.
func (e *Engine) Register(name string, fn TagFunc) error {
	return e.context.Register(name, fn)
}

// MustRegister adds a handler and panics if registration fails.
func (e *Engine) MustRegister(name string, fn TagFunc) {
	e.context.MustRegister(name, fn)
}

// LoadDefinitions parses YAML tag definitions and defines them.
func (e *Engine) LoadDefinitions(r io.Reader) error {
	return e.context.LoadDefinitions(r)
}

// Expand expands text with the engine's tags.
func (e *Engine) Expand(text string) (string, error) {
	return e.parser.Parse(text)
}

// Validate checks text for unclosed and mismatched tags.
func (e *Engine) Validate(text string) error {
	return e.parser.Validate(text)
}

// Tags returns the distinct tag names used in text, sorted.
func (e *Engine) Tags(text string) ([]string, error) {
	return e.parser.Tags(text)
}

// Render expands the latest version of a stored document. Inside it the
// snippet and yield tags are available.
func (e *Engine) Render(ctx context.Context, name string) (string, error) {
	if e.storage == nil {
		return "", NewNoStorageError()
	}
	doc, err := e.storage.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return e.renderDocument(ctx, doc)
}

// RenderVersion expands a specific version of a stored document.
func (e *Engine) RenderVersion(ctx context.Context, name string, version int) (string, error) {
	if e.storage == nil {
		return "", NewNoStorageError()
	}
	doc, err := e.storage.GetVersion(ctx, name, version)
	if err != nil {
		return "", err
	}
	return e.renderDocument(ctx, doc)
}

// SaveDocument checks the structure of source and stores it as the next
// version of name. Tag names are not resolved, so a document may use tags
// that are defined later.
func (e *Engine) SaveDocument(ctx context.Context, name, source string, metadata map[string]string) (*StoredDocument, error) {
	if e.storage == nil {
		return nil, NewNoStorageError()
	}
	if err := e.parser.Validate(source); err != nil {
		return nil, err
	}

	doc := &StoredDocument{
		Name:     name,
		Source:   source,
		Metadata: metadata,
	}
	if err := e.storage.Save(ctx, doc); err != nil {
		return nil, err
	}

	e.logger.Debug(LogMsgDocumentSaved,
		zap.String(LogFieldName, doc.Name),
		zap.Int(LogFieldVersion, doc.Version))
	return doc, nil
}

// Close closes the document storage, if any.
func (e *Engine) Close() error {
	if e.storage == nil {
		return nil
	}
	return e.storage.Close()
}

func (e *Engine) renderDocument(ctx context.Context, doc *StoredDocument) (string, error) {
	e.logger.Debug(LogMsgRenderStart,
		zap.String(LogFieldName, doc.Name),
		zap.Int(LogFieldVersion, doc.Version))
	return e.expandSnippet(ctx, doc.Source, 0, "")
}
