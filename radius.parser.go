package radius

import (
	"go.uber.org/zap"

	"github.com/itsatony/go-radius/internal"
)

// Parser expands documents against a Resolver. A Parser keeps no state
// between calls and may be shared between goroutines as long as its
// Resolver may.
type Parser struct {
	resolver Resolver
	logger   *zap.Logger
}

// NewParser creates a parser for resolver. Reads WithLogger.
func NewParser(resolver Resolver, opts ...Option) *Parser {
	cfg := applyOptions(opts)
	return &Parser{
		resolver: resolver,
		logger:   cfg.logger,
	}
}

// Resolver returns the parser's resolver.
func (p *Parser) Resolver() Resolver {
	return p.resolver
}

// Parse expands text and returns the result.
//
// The whole document is matched into a tree first; tags are rendered only
// once the structure is known to be valid, depth first and in document
// order. Structural errors and resolver errors abort the call and no partial
// output is returned.
func (p *Parser) Parse(text string) (string, error) {
	p.logger.Debug(LogMsgParseStart, zap.Int(LogFieldSource, len(text)))

	patterns, root, err := p.build(text)
	if err != nil {
		return "", err
	}

	out, err := internal.Evaluate(root, patterns, p.resolver.RenderTag, p.logger)
	if err != nil {
		return "", translateError(err)
	}

	p.logger.Debug(LogMsgParseEnd, zap.Int(LogFieldOutput, len(out)))
	return out, nil
}

// Validate checks that every start tag in text has a matching end tag. The
// resolver is not called, so unknown tag names are not reported.
func (p *Parser) Validate(text string) error {
	_, _, err := p.build(text)
	return err
}

// Tags returns the distinct tag names used in text, sorted. The resolver is
// not called.
func (p *Parser) Tags(text string) ([]string, error) {
	patterns, root, err := p.build(text)
	if err != nil {
		return nil, err
	}
	return internal.CollectTagNames(root, patterns), nil
}

func (p *Parser) build(text string) (*internal.Patterns, *internal.ContainerNode, error) {
	prefix := p.resolver.Prefix()
	if prefix == "" {
		prefix = DefaultPrefix
	}

	patterns := internal.PatternsFor(prefix, p.logger)
	root, err := internal.NewBuilder(patterns, p.logger).Build(text)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return patterns, root, nil
}
