package internal

import (
	"fmt"
)

// NodeType identifies parse tree node kinds
type NodeType int

// Node type constants
const (
	NodeTypeLiteral NodeType = iota
	NodeTypeContainer
)

// Node type string names for debugging
const (
	NodeTypeNameLiteral   = "LITERAL"
	NodeTypeNameContainer = "CONTAINER"
)

// String returns the string representation of the node type
func (n NodeType) String() string {
	if n == NodeTypeContainer {
		return NodeTypeNameContainer
	}
	return NodeTypeNameLiteral
}

// Node is the interface all parse tree nodes implement
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// String returns a human-readable representation
	String() string
}

// LiteralNode holds raw text between tag markers. Self-closing tags inside
// it are resolved when the tree is evaluated, not while parsing.
type LiteralNode struct {
	Text string
}

// NewLiteralNode creates a new literal node
func NewLiteralNode(text string) *LiteralNode {
	return &LiteralNode{Text: text}
}

// Type returns NodeTypeLiteral
func (n *LiteralNode) Type() NodeType {
	return NodeTypeLiteral
}

// String returns a string representation
func (n *LiteralNode) String() string {
	text := n.Text
	if len(text) > MaxStringDisplayLength {
		text = text[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("LiteralNode{%q}", text)
}

// ContainerNode is a matched start/end tag pair and its children.
// The root of every tree is a synthetic container with an empty name.
type ContainerNode struct {
	Name       string
	Attributes Attributes
	Contents   []Node
	closed     bool
}

// NewContainerNode creates an open container
func NewContainerNode(name string, attrs Attributes) *ContainerNode {
	if attrs == nil {
		attrs = make(Attributes)
	}
	return &ContainerNode{
		Name:       name,
		Attributes: attrs,
	}
}

// NewRootNode creates the synthetic root container
func NewRootNode() *ContainerNode {
	return NewContainerNode(StringValueEmpty, nil)
}

// Type returns NodeTypeContainer
func (n *ContainerNode) Type() NodeType {
	return NodeTypeContainer
}

// Append adds a child node
func (n *ContainerNode) Append(child Node) {
	n.Contents = append(n.Contents, child)
}

// Close marks the container as matched by its end tag.
func (n *ContainerNode) Close() {
	n.closed = true
}

// Closed reports whether the matching end tag was found.
func (n *ContainerNode) Closed() bool {
	return n.closed
}

// String returns a string representation
func (n *ContainerNode) String() string {
	return fmt.Sprintf("ContainerNode{%s, attrs=%v, children=%d}", n.Name, n.Attributes, len(n.Contents))
}
