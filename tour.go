package tour

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/josephwaugh312/shiftsync-tour/internal/gate"
	"github.com/josephwaugh312/shiftsync-tour/internal/logging"
	"github.com/josephwaugh312/shiftsync-tour/internal/overlay"
	"github.com/josephwaugh312/shiftsync-tour/internal/resolver"
	"github.com/josephwaugh312/shiftsync-tour/internal/runtime"
	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/memory"
	"github.com/josephwaugh312/shiftsync-tour/pkg/catalog"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

// Engine is the high-level entry point for the tour library.
// It wires the state machine, target resolution, overlay placement, and
// interaction gating behind one facade.
type Engine struct {
	machine    *runtime.Machine
	resolver   *resolver.Resolver
	positioner *overlay.Positioner
	gate       *gate.Gate

	catalog domain.Catalog
	loader  ports.CatalogLoader
	store   ports.KeyValueStore
	doc     ports.Document
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	overlayCfg  overlay.Config
	machineOpts []runtime.Option

	mu      sync.Mutex
	cleanup func(context.Context)
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects the persistence backend (default: in-memory).
func WithStore(s ports.KeyValueStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithDocument attaches a live document. Without one the engine runs
// headless: state transitions work, View returns no geometry.
func WithDocument(d ports.Document) Option {
	return func(e *Engine) {
		e.doc = d
	}
}

// WithCatalog replaces the built-in ShiftSync catalog.
func WithCatalog(c domain.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithCatalogLoader sources the catalog from a loader at construction time,
// taking precedence over WithCatalog.
func WithCatalogLoader(l ports.CatalogLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithOverlayConfig replaces the placement tables (margins, popover
// footprints, per-step overrides).
func WithOverlayConfig(cfg overlay.Config) Option {
	return func(e *Engine) {
		e.overlayCfg = cfg
	}
}

// WithShortcut overrides the keyboard toggle combination.
func WithShortcut(s domain.Shortcut) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithShortcut(s))
	}
}

// WithActionDelay overrides the route-change debounce delay.
func WithActionDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithActionDelay(d))
	}
}

// New initializes an Engine. Defaults: the built-in ShiftSync catalog, an
// in-memory store, no document, a no-op logger.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{
		overlayCfg: overlay.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.loader != nil {
		loaded, err := eng.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		eng.catalog = loaded
	}
	if eng.catalog == nil {
		eng.catalog = catalog.Default()
	}

	machineOpts := append([]runtime.Option{
		runtime.WithLogger(eng.logger),
		runtime.WithHooks(eng.hooks),
	}, eng.machineOpts...)

	machine, err := runtime.NewMachine(ctx, eng.catalog, eng.store, machineOpts...)
	if err != nil {
		return nil, err
	}
	eng.machine = machine
	eng.positioner = overlay.New(eng.overlayCfg)

	if eng.doc != nil {
		eng.resolver = resolver.New(eng.doc, resolver.WithLogger(eng.logger))
		eng.gate = gate.New(eng.doc, gate.WithLogger(eng.logger))
	}

	return eng, nil
}

// Catalog returns the catalog the engine runs.
func (e *Engine) Catalog() domain.Catalog {
	return e.machine.Catalog()
}

// State returns a copy of the current tour state.
func (e *Engine) State() domain.TourState {
	return e.machine.Snapshot()
}

// Start activates the tour at the first step.
func (e *Engine) Start(ctx context.Context) {
	e.machine.Start(ctx)
}

// Restart re-runs the tour from the first step.
func (e *Engine) Restart(ctx context.Context) {
	e.machine.Restart(ctx)
}

// Resume continues the tour after the last persisted step.
func (e *Engine) Resume(ctx context.Context) {
	e.machine.Resume(ctx)
}

// Toggle flips the tour: ends it when active, resumes or starts otherwise.
func (e *Engine) Toggle(ctx context.Context) {
	e.machine.Toggle(ctx)
	e.cleanupIfInactive(ctx)
}

// Next advances one step, refusing while the current step's required action
// is unsatisfied. Reports whether the state changed.
func (e *Engine) Next(ctx context.Context) bool {
	changed := e.machine.NextStep(ctx)
	e.cleanupIfInactive(ctx)
	return changed
}

// Prev moves back one step.
func (e *Engine) Prev(ctx context.Context) bool {
	return e.machine.PrevStep(ctx)
}

// Skip ends the tour early, keeping the resume point.
func (e *Engine) Skip(ctx context.Context) {
	e.machine.SkipTutorial(ctx)
	e.cleanupIfInactive(ctx)
}

// End deactivates the tour and persists the terminal flags.
func (e *Engine) End(ctx context.Context) {
	e.machine.End(ctx)
	e.cleanupIfInactive(ctx)
}

// CheckRequiredAction reports whether the current step permits advancement.
func (e *Engine) CheckRequiredAction() bool {
	return e.machine.CheckRequiredAction()
}

// CompleteRequiredAction records the current step's action as satisfied.
func (e *Engine) CompleteRequiredAction(ctx context.Context) {
	e.machine.CompleteRequiredAction(ctx)
}

// HandleRouteChange reports a navigation signal.
func (e *Engine) HandleRouteChange(ctx context.Context, route string) {
	e.machine.HandleRouteChange(ctx, route)
}

// HandleClick reports a click on a navigation element.
func (e *Engine) HandleClick(ctx context.Context, href string) {
	e.machine.HandleClick(ctx, href)
}

// HandleKey reports a keyboard event.
func (e *Engine) HandleKey(ctx context.Context, key domain.KeyEvent) {
	e.machine.HandleKey(ctx, key)
	e.cleanupIfInactive(ctx)
}

// RequestToggle is the programmatic counterpart of the keyboard shortcut.
func (e *Engine) RequestToggle(ctx context.Context) {
	e.machine.RequestToggle(ctx)
	e.cleanupIfInactive(ctx)
}

// StepView is the render-ready projection of the current step: the
// descriptor, derived progress, and (with a live document) the overlay
// geometry for it.
type StepView struct {
	Step        domain.StepDescriptor
	StepIndex   int
	Progress    int
	TargetFound bool
	Geometry    *domain.OverlayGeometry
}

// View resolves the current step against the document and computes its
// overlay geometry. Callers re-invoke it after layout changes (resize,
// scroll, route render) to refresh the placement. Returns nil when the
// tour is inactive.
func (e *Engine) View(ctx context.Context) (*StepView, error) {
	step, ok := e.machine.CurrentStep()
	if !ok {
		return nil, nil
	}
	state := e.machine.Snapshot()
	view := &StepView{
		Step:      step,
		StepIndex: state.StepIndex,
		Progress:  state.Progress,
	}
	if e.doc == nil {
		return view, nil
	}

	var target *domain.Rect
	if step.Anchored() {
		el, err := e.resolver.Resolve(ctx, step)
		if err != nil {
			return nil, err
		}
		if el != nil {
			if err := e.doc.ScrollIntoView(ctx, el); err != nil {
				return nil, err
			}
			// Rect is read after scrolling so it reflects the final layout.
			r, err := el.Rect(ctx)
			if err != nil {
				return nil, err
			}
			target = &r
			view.TargetFound = true
		}
	}

	vp, err := e.doc.Viewport(ctx)
	if err != nil {
		return nil, err
	}
	geo := e.positioner.Geometry(target, step, vp)
	view.Geometry = &geo
	return view, nil
}

// AllowInteraction marks the current step's target as interactive above the
// overlay, releasing the previous step's marks first. No-op headless.
func (e *Engine) AllowInteraction(ctx context.Context) error {
	if e.gate == nil {
		return nil
	}
	step, ok := e.machine.CurrentStep()

	e.mu.Lock()
	prev := e.cleanup
	e.cleanup = nil
	e.mu.Unlock()
	if prev != nil {
		prev(ctx)
	}
	if !ok {
		return nil
	}

	cleanup, err := e.gate.Allow(ctx, step)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.cleanup = cleanup
	e.mu.Unlock()
	return nil
}

// Close cancels pending timers and sweeps every tour artifact out of the
// document. Idempotent.
func (e *Engine) Close(ctx context.Context) {
	e.machine.Close()
	if e.gate != nil {
		if err := e.gate.CleanupAll(ctx); err != nil {
			e.logger.Warn("overlay cleanup failed on close", "err", err)
		}
	}
}

// cleanupIfInactive releases interaction marks once the tour has ended.
func (e *Engine) cleanupIfInactive(ctx context.Context) {
	if e.gate == nil || e.machine.Snapshot().Active {
		return
	}
	e.mu.Lock()
	prev := e.cleanup
	e.cleanup = nil
	e.mu.Unlock()
	if prev != nil {
		prev(ctx)
	}
	if err := e.gate.CleanupAll(ctx); err != nil {
		e.logger.Warn("overlay cleanup failed", "err", err)
	}
}
