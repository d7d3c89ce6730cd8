package fakedom_test

import (
	"context"
	"testing"

	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/fakedom"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_SelectorSubset(t *testing.T) {
	ctx := context.Background()
	doc := fakedom.New(
		&fakedom.Node{Tag: "button", ID: "add-shift", Classes: []string{"primary"}, Box: domain.Rect{Width: 80, Height: 32}},
		&fakedom.Node{Tag: "a", Attrs: map[string]string{"href": "/employees"}, Text: "Employees", Box: domain.Rect{Width: 120, Height: 24}},
		&fakedom.Node{Tag: "a", Attrs: map[string]string{"href": "/settings"}, Text: "Settings", Box: domain.Rect{Width: 120, Height: 24}},
	)

	t.Run("by id", func(t *testing.T) {
		els, err := doc.Query(ctx, "#add-shift")
		require.NoError(t, err)
		require.Len(t, els, 1)
	})

	t.Run("by tag and attribute value", func(t *testing.T) {
		els, err := doc.Query(ctx, `a[href="/employees"]`)
		require.NoError(t, err)
		require.Len(t, els, 1)
		text, err := els[0].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Employees", text)
	})

	t.Run("comma list preserves document order", func(t *testing.T) {
		els, err := doc.Query(ctx, "button.primary, a")
		require.NoError(t, err)
		require.Len(t, els, 3)
	})

	t.Run("no match is not an error", func(t *testing.T) {
		els, err := doc.Query(ctx, "#missing")
		require.NoError(t, err)
		assert.Empty(t, els)
	})

	t.Run("unsupported syntax errors", func(t *testing.T) {
		_, err := doc.Query(ctx, "nav > a:first-child")
		assert.Error(t, err)
	})
}

func TestElement_CloneAndRemove(t *testing.T) {
	ctx := context.Background()
	node := &fakedom.Node{Tag: "a", Attrs: map[string]string{"href": "/employees"}, Box: domain.Rect{Width: 100, Height: 20}}
	doc := fakedom.New(node)

	els, err := doc.Query(ctx, "a")
	require.NoError(t, err)
	require.Len(t, els, 1)

	clone, err := els[0].Clone(ctx)
	require.NoError(t, err)
	require.NoError(t, clone.SetAttribute(ctx, "data-tour-clone", "true"))

	els, err = doc.Query(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, els, 2, "clone should join the document")

	require.NoError(t, clone.Remove(ctx))
	els, err = doc.Query(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, els, 1)
}
