// Package gate controls which page elements stay interactive while the tour
// dims the rest of the page.
//
// Marked elements are exempt from the global dim/block overlay styling. For
// click-through steps (an in-page link the user must actually click during
// the tour) the gate additionally elevates the element's stacking order and
// injects an invisible clone over it so the highlight overlay cannot
// intercept the click.
package gate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/josephwaugh312/shiftsync-tour/internal/logging"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

// Marker attributes left on page elements while a step is gated. CleanupAll
// sweeps by these, so every mark must be discoverable through them.
const (
	AttrInteractive = "data-tour-interactive"
	AttrClone       = "data-tour-clone"
)

// Gate marks step targets as interactive and guarantees the marks come off
// again. Safe for concurrent use.
type Gate struct {
	doc    ports.Document
	logger *slog.Logger

	mu     sync.Mutex
	nextID int
	active map[int]func(context.Context)
}

// Option configures the Gate.
type Option func(*Gate)

// WithLogger configures a logger for cleanup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// New creates a Gate over the given document.
func New(doc ports.Document, opts ...Option) *Gate {
	g := &Gate{
		doc:    doc,
		logger: logging.NewNop(),
		active: make(map[int]func(context.Context)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allow marks every element matching the step's target as interactive and
// returns a cleanup function that reverses the marking. The cleanup is
// idempotent; calling it more than once, or never (relying on CleanupAll),
// is safe.
func (g *Gate) Allow(ctx context.Context, step domain.StepDescriptor) (func(context.Context), error) {
	els, err := g.doc.Query(ctx, step.Target)
	if err != nil {
		return func(context.Context) {}, err
	}

	var marked []ports.Element
	var restores []func(context.Context) error
	var clones []ports.Element

	for _, el := range els {
		if err := el.SetAttribute(ctx, AttrInteractive, "true"); err != nil {
			g.logger.Debug("failed to mark element interactive", "step", step.ID, "err", err)
			continue
		}
		marked = append(marked, el)

		if !step.ClickThrough {
			continue
		}

		restore, err := el.Raise(ctx)
		if err != nil {
			g.logger.Debug("failed to raise element", "step", step.ID, "err", err)
		} else {
			restores = append(restores, restore)
		}

		clone, err := el.Clone(ctx)
		if err != nil {
			g.logger.Debug("failed to inject clickable clone", "step", step.ID, "err", err)
			continue
		}
		if err := clone.SetAttribute(ctx, AttrClone, "true"); err != nil {
			g.logger.Debug("failed to mark clone", "step", step.ID, "err", err)
		}
		clones = append(clones, clone)
	}

	undo := func(ctx context.Context) {
		for _, el := range marked {
			if err := el.RemoveAttribute(ctx, AttrInteractive); err != nil {
				g.logger.Debug("failed to unmark element", "step", step.ID, "err", err)
			}
		}
		for _, restore := range restores {
			if err := restore(ctx); err != nil {
				g.logger.Debug("failed to restore stacking", "step", step.ID, "err", err)
			}
		}
		for _, clone := range clones {
			if err := clone.Remove(ctx); err != nil {
				g.logger.Debug("failed to remove clone", "step", step.ID, "err", err)
			}
		}
	}

	id := g.register(undo)
	var once sync.Once
	cleanup := func(ctx context.Context) {
		once.Do(func() {
			g.unregister(id)
			undo(ctx)
		})
	}
	return cleanup, nil
}

// CleanupAll reverses every still-active gate and then sweeps the document
// for lingering markers and clones regardless of which step (or which Gate
// instance) created them. Consumers call it on teardown as a safety net; it
// is safe to call at any time, repeatedly.
func (g *Gate) CleanupAll(ctx context.Context) error {
	g.mu.Lock()
	undos := make([]func(context.Context), 0, len(g.active))
	for _, undo := range g.active {
		undos = append(undos, undo)
	}
	g.active = make(map[int]func(context.Context))
	g.mu.Unlock()

	for _, undo := range undos {
		undo(ctx)
	}

	clones, err := g.doc.Query(ctx, "["+AttrClone+"]")
	if err != nil {
		return err
	}
	for _, clone := range clones {
		if err := clone.Remove(ctx); err != nil {
			g.logger.Debug("failed to remove clone", "err", err)
		}
	}

	marked, err := g.doc.Query(ctx, "["+AttrInteractive+"]")
	if err != nil {
		return err
	}
	for _, el := range marked {
		if err := el.RemoveAttribute(ctx, AttrInteractive); err != nil {
			g.logger.Debug("failed to unmark element", "err", err)
		}
	}
	return nil
}

func (g *Gate) register(undo func(context.Context)) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	g.active[g.nextID] = undo
	return g.nextID
}

func (g *Gate) unregister(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, id)
}
