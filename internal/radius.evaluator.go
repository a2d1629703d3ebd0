package internal

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ContentFunc returns the evaluated body of a container tag.
type ContentFunc func() string

// TagHandler renders one tag from its attributes and, for containers, its
// evaluated body. inner is nil for self-closing tags.
type TagHandler func(attrs Attributes, inner ContentFunc) (string, error)

// RenderFunc produces the substitution text for a named tag. inner is nil for
// self-closing tags; for containers it returns the evaluated body.
type RenderFunc func(name string, attrs Attributes, inner ContentFunc) (string, error)

// ResolveInline replaces every self-closing tag in text with its rendered
// output, left to right. Rendered output is not scanned again.
func ResolveInline(text string, patterns *Patterns, render RenderFunc) (string, error) {
	if text == StringValueEmpty {
		return StringValueEmpty, nil
	}

	var sb strings.Builder
	cursor := 0
	for {
		rest := text[cursor:]
		m := patterns.SelfClosing.FindStringSubmatchIndex(rest)
		if m == nil {
			if cursor == 0 {
				return text, nil
			}
			sb.WriteString(rest)
			return sb.String(), nil
		}

		sb.WriteString(rest[:m[0]])
		name := rest[m[2*groupSelfName]:m[2*groupSelfName+1]]
		attrs := ParseAttributes(rest[m[2*groupSelfAttrs]:m[2*groupSelfAttrs+1]])
		out, err := render(name, attrs, nil)
		if err != nil {
			return StringValueEmpty, err
		}
		sb.WriteString(out)
		cursor += m[1]
	}
}

// evalFrame is one container being evaluated
type evalFrame struct {
	node *ContainerNode
	next int
	out  strings.Builder
}

// Evaluate walks the tree rooted at root depth-first and returns the expanded
// document. Children are evaluated in order before their container is
// rendered, so render is called post-order, in document order. The root's own
// value is the concatenation of its children. The walk keeps its own frame
// stack, so deep nesting does not grow the call stack.
func Evaluate(root *ContainerNode, patterns *Patterns, render RenderFunc, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgEvaluateStart, zap.Int(LogFieldNodes, len(root.Contents)))

	stack := []*evalFrame{{node: root}}
	for {
		top := stack[len(stack)-1]

		if top.next < len(top.node.Contents) {
			child := top.node.Contents[top.next]
			top.next++

			switch n := child.(type) {
			case *LiteralNode:
				out, err := ResolveInline(n.Text, patterns, render)
				if err != nil {
					return StringValueEmpty, err
				}
				top.out.WriteString(out)
			case *ContainerNode:
				if !n.Closed() {
					return StringValueEmpty, newUnclosedTagError(n.Name)
				}
				stack = append(stack, &evalFrame{node: n})
			}
			continue
		}

		body := top.out.String()
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			logger.Debug(LogMsgEvaluateEnd, zap.Int(LogFieldOutput, len(body)))
			return body, nil
		}

		out, err := render(top.node.Name, top.node.Attributes, func() string { return body })
		if err != nil {
			return StringValueEmpty, err
		}
		stack[len(stack)-1].out.WriteString(out)
	}
}

// CollectTagNames returns the distinct tag names used under root, containers
// and self-closing tags alike, in sorted order. No tag is rendered.
func CollectTagNames(root *ContainerNode, patterns *Patterns) []string {
	seen := make(map[string]struct{})
	pending := []Node{root}
	for len(pending) > 0 {
		node := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		switch n := node.(type) {
		case *LiteralNode:
			for _, m := range patterns.SelfClosing.FindAllStringSubmatch(n.Text, -1) {
				seen[m[groupSelfName]] = struct{}{}
			}
		case *ContainerNode:
			if n != root {
				seen[n.Name] = struct{}{}
			}
			pending = append(pending, n.Contents...)
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
