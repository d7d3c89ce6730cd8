// Package rod adapts a live Chromium page (via go-rod) to the tour's
// Document and KeyValueStore ports, so the engine can run against the real
// ShiftSync frontend.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-rod/rod"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

// Document implements ports.Document over a rod page.
type Document struct {
	page    *rod.Page
	cloneID atomic.Int64
}

// NewDocument wraps an already-navigated page.
func NewDocument(page *rod.Page) *Document {
	return &Document{page: page}
}

// Query returns the elements matching a CSS selector, in document order.
func (d *Document) Query(ctx context.Context, selector string) ([]ports.Element, error) {
	els, err := d.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q failed: %w", selector, err)
	}
	out := make([]ports.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &Element{doc: d, el: el})
	}
	return out, nil
}

// Viewport returns the window size and scroll offsets.
func (d *Document) Viewport(ctx context.Context) (domain.Viewport, error) {
	res, err := d.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS: `() => ({
			width: window.innerWidth,
			height: window.innerHeight,
			scrollX: window.scrollX,
			scrollY: window.scrollY
		})`,
		ByValue: true,
	})
	if err != nil {
		return domain.Viewport{}, fmt.Errorf("viewport read failed: %w", err)
	}
	return domain.Viewport{
		Width:   res.Value.Get("width").Num(),
		Height:  res.Value.Get("height").Num(),
		ScrollX: res.Value.Get("scrollX").Num(),
		ScrollY: res.Value.Get("scrollY").Num(),
	}, nil
}

// ScrollIntoView scrolls the element into the visible viewport.
func (d *Document) ScrollIntoView(ctx context.Context, el ports.Element) error {
	re, ok := el.(*Element)
	if !ok {
		return fmt.Errorf("foreign element %T", el)
	}
	return re.el.Context(ctx).ScrollIntoView()
}
