package ports

import (
	"context"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// Document is the DOM query capability the tour consumes. The engine treats
// it as a live, mutable page: results are never cached across renders.
type Document interface {
	// Query returns the elements matching a CSS selector, in document order.
	// A selector the backend cannot parse returns an error; a selector that
	// matches nothing returns an empty slice and no error.
	Query(ctx context.Context, selector string) ([]Element, error)

	// Viewport returns the current window size and scroll offsets.
	Viewport(ctx context.Context) (domain.Viewport, error)

	// ScrollIntoView scrolls the element into the visible viewport.
	ScrollIntoView(ctx context.Context, el Element) error
}

// Element is a weak reference to a live DOM element. It may go stale if the
// page mutates; callers re-resolve rather than hold references across
// renders.
type Element interface {
	// Rect returns the element's bounding rectangle in viewport coordinates.
	Rect(ctx context.Context) (domain.Rect, error)

	// Visible reports whether the element is rendered (display, visibility,
	// and a non-empty bounding box).
	Visible(ctx context.Context) (bool, error)

	// Text returns the element's visible text content.
	Text(ctx context.Context) (string, error)

	// Attribute returns the named attribute, or "" when absent.
	Attribute(ctx context.Context, name string) (string, error)

	// SetAttribute sets the named attribute.
	SetAttribute(ctx context.Context, name, value string) error

	// RemoveAttribute removes the named attribute. Removing an absent
	// attribute is not an error.
	RemoveAttribute(ctx context.Context, name string) error

	// Raise elevates the element's stacking order above the tour overlay.
	// The returned function restores the previous stacking.
	Raise(ctx context.Context) (func(context.Context) error, error)

	// Clone injects an invisible full-overlap copy of the element with
	// pointer events enabled and the original's click semantics, positioned
	// absolutely over the original. The clone is a real page element and
	// must be removed via Remove.
	Clone(ctx context.Context) (Element, error)

	// Remove detaches the element from the document.
	Remove(ctx context.Context) error
}
