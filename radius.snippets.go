package radius

import (
	"context"

	"go.uber.org/zap"
)

// snippetScope is the state one level of snippet expansion sees.
type snippetScope struct {
	engine *Engine
	ctx    context.Context
	depth  int
	body   string
}

// expandSnippet expands source with the engine's tags plus snippet and yield
// bound to depth and body.
func (e *Engine) expandSnippet(ctx context.Context, source string, depth int, body string) (string, error) {
	scope := &snippetScope{engine: e, ctx: ctx, depth: depth, body: body}

	overlay, err := e.context.WithTag(TagNameSnippet, scope.snippet)
	if err != nil {
		return "", err
	}
	overlay, err = overlay.WithTag(TagNameYield, scope.yield)
	if err != nil {
		return "", err
	}

	return NewParser(overlay, WithLogger(e.logger)).Parse(source)
}

// snippet loads the named document and expands it one level deeper. The
// evaluated body of a container snippet becomes the yield of the loaded
// document.
func (s *snippetScope) snippet(attrs Attributes, inner ContentFunc) (string, error) {
	name, _ := attrs.Get(AttrName)
	if name == "" {
		return "", NewMissingNameError(TagNameSnippet)
	}

	depth := s.depth + 1
	if max := s.engine.maxSnippetDepth; max > 0 && depth > max {
		return "", NewSnippetDepthError(name, depth)
	}

	body := ""
	if inner != nil {
		body = inner()
	}

	doc, err := s.engine.storage.Get(s.ctx, name)
	if err != nil {
		return "", err
	}

	s.engine.logger.Debug(LogMsgSnippetExpand,
		zap.String(LogFieldName, name),
		zap.Int(LogFieldDepth, depth))
	return s.engine.expandSnippet(s.ctx, doc.Source, depth, body)
}

func (s *snippetScope) yield(_ Attributes, _ ContentFunc) (string, error) {
	return s.body, nil
}
