package internal

import (
	"go.uber.org/zap"
)

// Builder turns a document into a tree of containers by matching start and
// end tags on an explicit stack.
type Builder struct {
	patterns *Patterns
	logger   *zap.Logger
}

// NewBuilder creates a builder for the given patterns
func NewBuilder(patterns *Patterns, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgBuilderCreated, zap.String(LogFieldPrefix, patterns.Prefix))
	return &Builder{
		patterns: patterns,
		logger:   logger,
	}
}

// Build scans text and returns the root container.
//
// Each step finds the leftmost start or end marker after the cursor. Text in
// front of it becomes a literal on the current top of the stack. A start tag
// pushes a new container; an end tag pops the top, which must carry the same
// name, and appends it to the new top. Self-closing tags are not markers and
// stay inside literal text. When no marker is left the remainder is appended
// to the root, provided every container has been closed.
func (b *Builder) Build(text string) (*ContainerNode, error) {
	b.logger.Debug(LogMsgScanStart, zap.Int(LogFieldSource, len(text)))

	root := NewRootNode()
	stack := []*ContainerNode{root}
	cursor := 0
	segments := 0
	maxDepth := 0

	for {
		rest := text[cursor:]
		m := b.patterns.Marker.FindStringSubmatchIndex(rest)
		if m == nil {
			if len(stack) > 1 {
				return nil, newUnclosedTagError(stack[len(stack)-1].Name)
			}
			root.Append(NewLiteralNode(rest))
			segments++
			break
		}

		stack[len(stack)-1].Append(NewLiteralNode(rest[:m[0]]))
		segments++

		if m[2*groupStartName] >= 0 {
			name := rest[m[2*groupStartName]:m[2*groupStartName+1]]
			attrText := StringValueEmpty
			if m[2*groupStartAttrs] >= 0 {
				attrText = rest[m[2*groupStartAttrs]:m[2*groupStartAttrs+1]]
			}
			stack = append(stack, NewContainerNode(name, ParseAttributes(attrText)))
			if depth := len(stack) - 1; depth > maxDepth {
				maxDepth = depth
			}
		} else {
			endName := rest[m[2*groupEndName]:m[2*groupEndName+1]]
			popped := stack[len(stack)-1]
			// The root never closes; a stray end tag reports it by its empty name.
			if len(stack) == 1 {
				return nil, newMismatchedTagError(popped.Name, endName)
			}
			stack = stack[:len(stack)-1]
			if popped.Name != endName {
				return nil, newMismatchedTagError(popped.Name, endName)
			}
			popped.Close()
			stack[len(stack)-1].Append(popped)
		}

		cursor += m[1]
	}

	b.logger.Debug(LogMsgScanEnd,
		zap.Int(LogFieldSegments, segments),
		zap.Int(LogFieldMaxDepth, maxDepth),
	)
	return root, nil
}
