package rod

import (
	"context"
	"fmt"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"

	"github.com/go-rod/rod"
)

// cloneIDAttr tags injected clones so they can be re-located after the
// injection script returns.
const cloneIDAttr = "data-tour-clone-id"

// Element implements ports.Element over a rod element handle.
type Element struct {
	doc *Document
	el  *rod.Element
}

// Rect returns the bounding rectangle in viewport coordinates.
func (e *Element) Rect(ctx context.Context) (domain.Rect, error) {
	res, err := e.el.Context(ctx).Eval(`() => {
		const r = this.getBoundingClientRect();
		return { top: r.top, left: r.left, width: r.width, height: r.height };
	}`)
	if err != nil {
		return domain.Rect{}, fmt.Errorf("rect read failed: %w", err)
	}
	return domain.Rect{
		Top:    res.Value.Get("top").Num(),
		Left:   res.Value.Get("left").Num(),
		Width:  res.Value.Get("width").Num(),
		Height: res.Value.Get("height").Num(),
	}, nil
}

// Visible reports whether the element is rendered.
func (e *Element) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

// Text returns the element's visible text content.
func (e *Element) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

// Attribute returns the named attribute, or "" when absent.
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	val, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}
	return *val, nil
}

// SetAttribute sets the named attribute.
func (e *Element) SetAttribute(ctx context.Context, name, value string) error {
	_, err := e.el.Context(ctx).Eval(`(name, value) => this.setAttribute(name, value)`, name, value)
	return err
}

// RemoveAttribute removes the named attribute.
func (e *Element) RemoveAttribute(ctx context.Context, name string) error {
	_, err := e.el.Context(ctx).Eval(`(name) => this.removeAttribute(name)`, name)
	return err
}

// Raise elevates the element above the tour overlay. The returned function
// restores the previous inline style.
func (e *Element) Raise(ctx context.Context) (func(context.Context) error, error) {
	res, err := e.el.Context(ctx).Eval(`() => {
		const prev = { zIndex: this.style.zIndex, position: this.style.position };
		if (!this.style.position) {
			this.style.position = 'relative';
		}
		this.style.zIndex = '10001';
		return prev;
	}`)
	if err != nil {
		return nil, fmt.Errorf("raise failed: %w", err)
	}
	prevZ := res.Value.Get("zIndex").Str()
	prevPos := res.Value.Get("position").Str()

	restore := func(ctx context.Context) error {
		_, err := e.el.Context(ctx).Eval(`(z, pos) => {
			this.style.zIndex = z;
			this.style.position = pos;
		}`, prevZ, prevPos)
		return err
	}
	return restore, nil
}

// Clone injects an invisible full-overlap copy of the element that still
// receives pointer events, so real clicks pass to the page while the
// original sits under the overlay.
func (e *Element) Clone(ctx context.Context) (ports.Element, error) {
	id := fmt.Sprintf("tc-%d", e.doc.cloneID.Add(1))

	_, err := e.el.Context(ctx).Eval(`(attr, id) => {
		const clone = this.cloneNode(true);
		const r = this.getBoundingClientRect();
		clone.setAttribute(attr, id);
		clone.style.position = 'absolute';
		clone.style.top = (r.top + window.scrollY) + 'px';
		clone.style.left = (r.left + window.scrollX) + 'px';
		clone.style.width = r.width + 'px';
		clone.style.height = r.height + 'px';
		clone.style.opacity = '0';
		clone.style.pointerEvents = 'auto';
		clone.style.zIndex = '10002';
		document.body.appendChild(clone);
	}`, cloneIDAttr, id)
	if err != nil {
		return nil, fmt.Errorf("clone injection failed: %w", err)
	}

	els, err := e.doc.Query(ctx, fmt.Sprintf("[%s=%q]", cloneIDAttr, id))
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("injected clone %s not found", id)
	}
	return els[0], nil
}

// Remove detaches the element from the document.
func (e *Element) Remove(ctx context.Context) error {
	_, err := e.el.Context(ctx).Eval(`() => this.remove()`)
	return err
}
