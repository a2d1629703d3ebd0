package radius

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnippetEngine(t *testing.T, docs map[string]string, opts ...Option) *Engine {
	t.Helper()
	ctx := context.Background()
	storage := NewMemoryStorage()
	for name, source := range docs {
		require.NoError(t, storage.Save(ctx, &StoredDocument{Name: name, Source: source}))
	}
	engine := MustNew(append([]Option{WithStorage(storage)}, opts...)...)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func TestSnippet_Include(t *testing.T) {
	engine := newSnippetEngine(t, map[string]string{
		"header": "<h1><radius:title /></h1>",
		"page":   `<radius:snippet name="header" /><p>body</p>`,
	})
	engine.MustRegister("title", func(Attributes, ContentFunc) (string, error) {
		return "Welcome", nil
	})

	out, err := engine.Render(context.Background(), "page")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Welcome</h1><p>body</p>", out)
}

func TestSnippet_Yield(t *testing.T) {
	engine := newSnippetEngine(t, map[string]string{
		"layout": "<main><radius:yield /></main>",
		"home":   `<radius:snippet name="layout">hi</radius:snippet>`,
	})

	out, err := engine.Render(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, "<main>hi</main>", out)
}

func TestSnippet_NestedYield(t *testing.T) {
	engine := newSnippetEngine(t, map[string]string{
		"outer": "[<radius:yield />]",
		"inner": `(<radius:snippet name="outer"><radius:yield /></radius:snippet>)`,
		"page":  `<radius:snippet name="inner">x</radius:snippet>`,
	})

	out, err := engine.Render(context.Background(), "page")
	require.NoError(t, err)
	assert.Equal(t, "([x])", out)
}

func TestSnippet_YieldOutsideSnippet(t *testing.T) {
	engine := newSnippetEngine(t, map[string]string{
		"page": "a<radius:yield />b",
	})

	out, err := engine.Render(context.Background(), "page")
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestSnippet_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing name", func(t *testing.T) {
		engine := newSnippetEngine(t, map[string]string{"page": "<radius:snippet />"})
		_, err := engine.Render(ctx, "page")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgMissingName)
	})

	t.Run("missing document", func(t *testing.T) {
		engine := newSnippetEngine(t, map[string]string{"page": `<radius:snippet name="gone" />`})
		_, err := engine.Render(ctx, "page")
		assert.True(t, errors.Is(err, ErrDocumentNotFound))
	})

	t.Run("malformed snippet", func(t *testing.T) {
		engine := newSnippetEngine(t, map[string]string{
			"broken": "<radius:a>",
			"page":   `<radius:snippet name="broken" />`,
		})
		_, err := engine.Render(ctx, "page")
		assert.True(t, IsUnclosedTagError(err))
	})

	t.Run("recursion hits depth limit", func(t *testing.T) {
		engine := newSnippetEngine(t, map[string]string{
			"loop": `<radius:snippet name="loop" />`,
		}, WithMaxSnippetDepth(3))
		_, err := engine.Render(ctx, "loop")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgSnippetDepth)
	})
}

func TestSnippet_DepthLimit(t *testing.T) {
	docs := map[string]string{
		"d1":   "1",
		"d2":   `<radius:snippet name="d1" />`,
		"d3":   `<radius:snippet name="d2" />`,
		"page": `<radius:snippet name="d3" />`,
	}

	out, err := newSnippetEngine(t, docs, WithMaxSnippetDepth(3)).Render(context.Background(), "page")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	_, err = newSnippetEngine(t, docs, WithMaxSnippetDepth(2)).Render(context.Background(), "page")
	assert.Contains(t, err.Error(), ErrMsgSnippetDepth)

	out, err = newSnippetEngine(t, docs, WithMaxSnippetDepth(0)).Render(context.Background(), "page")
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}

func TestSnippet_NotAvailableInExpand(t *testing.T) {
	engine := newSnippetEngine(t, map[string]string{"header": "h"})

	_, err := engine.Expand(`<radius:snippet name="header" />`)
	assert.True(t, IsUnrecognizedTagError(err))
}

func TestSnippet_BaseContextUnchanged(t *testing.T) {
	engine := newSnippetEngine(t, map[string]string{"page": "x"})

	_, err := engine.Render(context.Background(), "page")
	require.NoError(t, err)
	assert.False(t, engine.Context().Has(TagNameSnippet))
	assert.False(t, engine.Context().Has(TagNameYield))
}
