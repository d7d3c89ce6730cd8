package gate_test

import (
	"context"
	"testing"

	"github.com/josephwaugh312/shiftsync-tour/internal/gate"
	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/fakedom"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMatches(t *testing.T, doc *fakedom.Document, selector string) int {
	t.Helper()
	els, err := doc.Query(context.Background(), selector)
	require.NoError(t, err)
	return len(els)
}

func TestAllow_MarksAndCleans(t *testing.T) {
	ctx := context.Background()
	doc := fakedom.New(
		&fakedom.Node{Tag: "button", ID: "add-shift", Box: domain.Rect{Width: 80, Height: 32}},
	)
	g := gate.New(doc)

	cleanup, err := g.Allow(ctx, domain.StepDescriptor{ID: "add-shift", Target: "#add-shift"})
	require.NoError(t, err)
	assert.Equal(t, 1, countMatches(t, doc, "["+gate.AttrInteractive+"]"))

	cleanup(ctx)
	assert.Equal(t, 0, countMatches(t, doc, "["+gate.AttrInteractive+"]"))

	// Idempotent: a second call must not disturb anything.
	cleanup(ctx)
	assert.Equal(t, 0, countMatches(t, doc, "["+gate.AttrInteractive+"]"))
}

func TestAllow_ClickThroughInjectsClone(t *testing.T) {
	ctx := context.Background()
	doc := fakedom.New(
		&fakedom.Node{Tag: "a", Attrs: map[string]string{"href": "/employees"}, Box: domain.Rect{Width: 100, Height: 24}},
	)
	g := gate.New(doc)

	cleanup, err := g.Allow(ctx, domain.StepDescriptor{
		ID:           "employee-management",
		Target:       `a[href="/employees"]`,
		ClickThrough: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countMatches(t, doc, "["+gate.AttrClone+"]"), "click-through should inject a clone")
	assert.Equal(t, 1, countMatches(t, doc, "[data-tour-raised]"), "click-through should elevate stacking")

	cleanup(ctx)
	assert.Equal(t, 0, countMatches(t, doc, "["+gate.AttrClone+"]"))
	assert.Equal(t, 0, countMatches(t, doc, "[data-tour-raised]"))
	assert.Equal(t, 1, countMatches(t, doc, `a[href="/employees"]`), "the real element survives cleanup")
}

func TestCleanupAll_SweepsEverything(t *testing.T) {
	ctx := context.Background()
	doc := fakedom.New(
		&fakedom.Node{Tag: "a", Attrs: map[string]string{"href": "/employees"}, Box: domain.Rect{Width: 100, Height: 24}},
		&fakedom.Node{Tag: "button", ID: "add-shift", Box: domain.Rect{Width: 80, Height: 32}},
	)
	g := gate.New(doc)

	// Two gated steps, neither cleaned up individually.
	_, err := g.Allow(ctx, domain.StepDescriptor{ID: "employee-management", Target: `a[href="/employees"]`, ClickThrough: true})
	require.NoError(t, err)
	_, err = g.Allow(ctx, domain.StepDescriptor{ID: "add-shift", Target: "#add-shift"})
	require.NoError(t, err)

	require.NoError(t, g.CleanupAll(ctx))
	assert.Equal(t, 0, countMatches(t, doc, "["+gate.AttrInteractive+"]"))
	assert.Equal(t, 0, countMatches(t, doc, "["+gate.AttrClone+"]"))
	assert.Equal(t, 0, countMatches(t, doc, "[data-tour-raised]"))

	// Safe to call again with nothing to do.
	require.NoError(t, g.CleanupAll(ctx))
}

func TestCleanupAll_SweepsMarksFromLostBookkeeping(t *testing.T) {
	ctx := context.Background()
	doc := fakedom.New(
		&fakedom.Node{Tag: "a", Attrs: map[string]string{"href": "/employees"}, Box: domain.Rect{Width: 100, Height: 24}},
	)

	first := gate.New(doc)
	_, err := first.Allow(ctx, domain.StepDescriptor{ID: "employee-management", Target: `a[href="/employees"]`, ClickThrough: true})
	require.NoError(t, err)

	// A fresh gate (e.g. after an abrupt remount) still finds the leftovers.
	second := gate.New(doc)
	require.NoError(t, second.CleanupAll(ctx))
	assert.Equal(t, 0, countMatches(t, doc, "["+gate.AttrInteractive+"]"))
	assert.Equal(t, 0, countMatches(t, doc, "["+gate.AttrClone+"]"))
}
