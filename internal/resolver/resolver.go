// Package resolver locates the live DOM element a tour step anchors to.
//
// Resolution is a data-driven fallback chain: the step's primary selector
// first, then its declared fallback strategies in order. Strategies are
// tagged variants (selector, text match, shape match) so the chain is
// catalog data rather than per-step code. A step that resolves to nothing
// is not an error; callers degrade to non-anchored display.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/josephwaugh312/shiftsync-tour/internal/logging"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

// Resolver queries a Document for step targets. It never caches results:
// elements are weak references that go stale when the page mutates.
type Resolver struct {
	doc    ports.Document
	logger *slog.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithLogger configures a logger for strategy-level failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver over the given document.
func New(doc ports.Document, opts ...Option) *Resolver {
	r := &Resolver{
		doc:    doc,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan returns the ordered strategy chain for a step: the primary selector
// followed by the step's declared fallbacks.
func Plan(step domain.StepDescriptor) []domain.Fallback {
	plan := make([]domain.Fallback, 0, len(step.Fallbacks)+1)
	if step.Target != "" {
		plan = append(plan, domain.Fallback{Kind: domain.FallbackSelector, Selector: step.Target})
	}
	return append(plan, step.Fallbacks...)
}

// Resolve locates the visible element for a step, or nil when nothing
// visible is found. Strategies that the backend rejects (e.g. unsupported
// selector syntax) are logged and skipped; they never fail the resolution.
func (r *Resolver) Resolve(ctx context.Context, step domain.StepDescriptor) (ports.Element, error) {
	vp, err := r.doc.Viewport(ctx)
	if err != nil {
		return nil, err
	}
	device := vp.Device()

	for _, strategy := range Plan(step) {
		if strategy.Device != "" && strategy.Device != device {
			continue
		}

		el, err := r.apply(ctx, strategy)
		if err != nil {
			r.logger.Debug("resolution strategy failed, trying next",
				"step", step.ID, "kind", strategy.Kind, "err", err)
			continue
		}
		if el != nil {
			return el, nil
		}
	}
	return nil, nil
}

// apply runs one strategy and returns the first visible match in document
// order, or nil.
func (r *Resolver) apply(ctx context.Context, strategy domain.Fallback) (ports.Element, error) {
	switch strategy.Kind {
	case domain.FallbackSelector:
		els, err := r.doc.Query(ctx, strategy.Selector)
		if err != nil {
			return nil, err
		}
		return r.firstVisible(ctx, els, nil)

	case domain.FallbackText:
		scope := strategy.Scope
		if scope == "" {
			scope = "a, button"
		}
		els, err := r.doc.Query(ctx, scope)
		if err != nil {
			return nil, err
		}
		needle := strings.ToLower(strategy.Text)
		return r.firstVisible(ctx, els, func(el ports.Element) (bool, error) {
			text, err := el.Text(ctx)
			if err != nil {
				return false, err
			}
			return strings.Contains(strings.ToLower(text), needle), nil
		})

	case domain.FallbackShape:
		scope := strategy.Scope
		if scope == "" {
			scope = "path"
		}
		els, err := r.doc.Query(ctx, scope)
		if err != nil {
			return nil, err
		}
		return r.firstVisible(ctx, els, func(el ports.Element) (bool, error) {
			d, err := el.Attribute(ctx, "d")
			if err != nil {
				return false, err
			}
			return d != "" && strings.HasPrefix(d, strategy.Shape), nil
		})
	}
	return nil, nil
}

// firstVisible filters candidates by an optional predicate and then by
// visibility. Zero-size elements count as not rendered.
func (r *Resolver) firstVisible(ctx context.Context, els []ports.Element, keep func(ports.Element) (bool, error)) (ports.Element, error) {
	for _, el := range els {
		if keep != nil {
			ok, err := keep(el)
			if err != nil || !ok {
				continue
			}
		}
		visible, err := el.Visible(ctx)
		if err != nil || !visible {
			continue
		}
		rect, err := el.Rect(ctx)
		if err != nil || rect.Empty() {
			continue
		}
		return el, nil
	}
	return nil, nil
}
