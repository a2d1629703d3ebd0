package internal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var treeCmpOpts = cmp.AllowUnexported(ContainerNode{})

func lit(text string) Node {
	return NewLiteralNode(text)
}

func closedContainer(name string, attrs Attributes, children ...Node) *ContainerNode {
	if attrs == nil {
		attrs = Attributes{}
	}
	c := NewContainerNode(name, attrs)
	c.Contents = children
	c.Close()
	return c
}

func rootWith(children ...Node) *ContainerNode {
	r := NewRootNode()
	r.Contents = children
	return r
}

func build(t *testing.T, text string) (*ContainerNode, error) {
	t.Helper()
	return NewBuilder(PatternsFor(DefaultPrefix, nil), nil).Build(text)
}

func TestBuilder_Build_Tree(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *ContainerNode
	}{
		{
			name:     "empty document",
			input:    "",
			expected: rootWith(lit("")),
		},
		{
			name:     "plain text",
			input:    "just text",
			expected: rootWith(lit("just text")),
		},
		{
			name:  "single container",
			input: "a<radius:x>b</radius:x>c",
			expected: rootWith(
				lit("a"),
				closedContainer("x", nil, lit("b")),
				lit("c"),
			),
		},
		{
			name:  "nested containers keep empty literals",
			input: "<radius:a><radius:b></radius:b></radius:a>",
			expected: rootWith(
				lit(""),
				closedContainer("a", nil,
					lit(""),
					closedContainer("b", nil, lit("")),
					lit(""),
				),
				lit(""),
			),
		},
		{
			name:  "self-closing tags stay in literal text",
			input: `<radius:a k="v"><radius:b /></radius:a>`,
			expected: rootWith(
				lit(""),
				closedContainer("a", Attributes{"k": "v"}, lit("<radius:b />")),
				lit(""),
			),
		},
		{
			name:  "siblings",
			input: "<radius:a>1</radius:a><radius:b>2</radius:b>",
			expected: rootWith(
				lit(""),
				closedContainer("a", nil, lit("1")),
				lit(""),
				closedContainer("b", nil, lit("2")),
				lit(""),
			),
		},
		{
			name:  "other prefixes are text",
			input: "<other:a>x</other:a>",
			expected: rootWith(
				lit("<other:a>x</other:a>"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := build(t, tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, root, treeCmpOpts); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilder_Build_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   TagErrorKind
		tag    string
		endTag string
	}{
		{
			name:  "missing end tag",
			input: "<radius:a>text",
			kind:  TagErrorUnclosed,
			tag:   "a",
		},
		{
			name:  "innermost open container is reported",
			input: "<radius:a><radius:b></radius:b>",
			kind:  TagErrorUnclosed,
			tag:   "a",
		},
		{
			name:  "deepest unclosed container",
			input: "<radius:a><radius:b>",
			kind:  TagErrorUnclosed,
			tag:   "b",
		},
		{
			name:   "wrong end tag reports the popped container",
			input:  "<radius:a><radius:b></radius:a>",
			kind:   TagErrorMismatched,
			tag:    "b",
			endTag: "a",
		},
		{
			name:   "stray end tag",
			input:  "text</radius:a>",
			kind:   TagErrorMismatched,
			tag:    "",
			endTag: "a",
		},
		{
			name:   "extra end tag after closed container",
			input:  "<radius:a></radius:a></radius:b>",
			kind:   TagErrorMismatched,
			tag:    "",
			endTag: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := build(t, tt.input)
			require.Error(t, err)
			assert.Nil(t, root)

			var tagErr *TagError
			require.ErrorAs(t, err, &tagErr)
			assert.Equal(t, tt.kind, tagErr.Kind)
			assert.Equal(t, tt.tag, tagErr.Tag)
			assert.Equal(t, tt.endTag, tagErr.EndTag)
		})
	}
}

func TestBuilder_Build_DeepNesting(t *testing.T) {
	const depth = 10000
	text := strings.Repeat("<radius:n>", depth) + "x" + strings.Repeat("</radius:n>", depth)

	root, err := build(t, text)
	require.NoError(t, err)

	levels := 0
	node := root
	for {
		var next *ContainerNode
		for _, child := range node.Contents {
			if c, ok := child.(*ContainerNode); ok {
				next = c
			}
		}
		if next == nil {
			break
		}
		levels++
		node = next
	}
	assert.Equal(t, depth, levels)
}

func TestTagError_Error(t *testing.T) {
	assert.Equal(t, "missing end tag: a", newUnclosedTagError("a").Error())
	assert.Equal(t, "mismatched end tag: b closed by a", newMismatchedTagError("b", "a").Error())
}

func TestNodeStrings(t *testing.T) {
	assert.Equal(t, NodeTypeNameLiteral, NodeTypeLiteral.String())
	assert.Equal(t, NodeTypeNameContainer, NodeTypeContainer.String())

	long := NewLiteralNode(strings.Repeat("x", MaxStringDisplayLength+1))
	assert.Contains(t, long.String(), TruncationSuffix)

	c := NewContainerNode("a", Attributes{"k": "v"})
	assert.Equal(t, NodeTypeContainer, c.Type())
	assert.False(t, c.Closed())
	c.Close()
	assert.True(t, c.Closed())
	assert.Contains(t, c.String(), "a")
}
