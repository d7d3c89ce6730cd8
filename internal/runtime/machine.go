// Package runtime implements the tour state machine: activation, step
// navigation, required-action gating, viewed-step bookkeeping, and the
// persisted flags that survive a reload.
package runtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/josephwaugh312/shiftsync-tour/internal/logging"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

// Persistence keys. The shapes match the host app's original local storage
// contract: a literal "true" flag, a stringified integer, and a JSON array
// of step ids.
const (
	KeyHasSeenTutorial   = "hasSeenTutorial"
	KeyLastCompletedStep = "lastCompletedStep"
	KeyViewedSteps       = "viewedTutorialSteps"
)

// DefaultActionDelay is the grace period between a route change and the
// automatic completion of the step's required action. Cosmetic: it debounces
// against render timing, it is not a safety mechanism.
const DefaultActionDelay = 500 * time.Millisecond

// Machine owns the tour state. All transitions are synchronous and atomic
// from the caller's perspective; the only asynchrony is the route-change
// debounce timer. Safe for concurrent use.
type Machine struct {
	catalog  domain.Catalog
	store    ports.KeyValueStore
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	shortcut domain.Shortcut
	delay    time.Duration

	mu        sync.Mutex
	active    bool
	stepIndex int
	completed map[string]struct{}
	viewed    []string
	viewedSet map[string]struct{}
	hasSeen   bool
	timers    map[*actionTimer]struct{}
	closed    bool
}

// Option configures the Machine.
type Option func(*Machine)

// WithLogger configures a logger for persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithActionDelay overrides the route-change debounce delay.
func WithActionDelay(d time.Duration) Option {
	return func(m *Machine) {
		m.delay = d
	}
}

// WithShortcut overrides the keyboard combination that toggles the tour.
func WithShortcut(s domain.Shortcut) Option {
	return func(m *Machine) {
		m.shortcut = s
	}
}

// NewMachine creates a Machine and loads the persisted subset of its state
// (viewed steps and the has-seen flag). Corrupt persisted values are logged
// and treated as defaults; they never fail construction.
func NewMachine(ctx context.Context, catalog domain.Catalog, store ports.KeyValueStore, opts ...Option) (*Machine, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		catalog:   catalog,
		store:     store,
		logger:    logging.NewNop(),
		shortcut:  domain.DefaultShortcut,
		delay:     DefaultActionDelay,
		completed: make(map[string]struct{}),
		viewedSet: make(map[string]struct{}),
		timers:    make(map[*actionTimer]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.loadPersisted(ctx)
	return m, nil
}

// Catalog returns the step catalog the machine runs.
func (m *Machine) Catalog() domain.Catalog {
	return m.catalog
}

// Snapshot returns a copy of the current tour state.
func (m *Machine) Snapshot() domain.TourState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() domain.TourState {
	completed := make([]string, 0, len(m.completed))
	for id := range m.completed {
		completed = append(completed, id)
	}
	return domain.TourState{
		Active:           m.active,
		StepIndex:        m.stepIndex,
		Progress:         m.progressLocked(),
		CompletedActions: completed,
		ViewedSteps:      append([]string(nil), m.viewed...),
		HasSeenTutorial:  m.hasSeen,
	}
}

// CurrentStep returns the active step descriptor. The second result is
// false while the tour is inactive.
func (m *Machine) CurrentStep() (domain.StepDescriptor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return domain.StepDescriptor{}, false
	}
	return m.catalog[m.stepIndex], true
}

// Progress returns the derived completion percentage; zero while inactive.
func (m *Machine) Progress() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progressLocked()
}

func (m *Machine) progressLocked() int {
	if !m.active {
		return 0
	}
	last := m.catalog.LastIndex()
	if last == 0 {
		return 100
	}
	return int(math.Round(float64(m.stepIndex) / float64(last) * 100))
}

// Start activates the tour at the first step and clears any completed
// actions from a previous run. Always allowed.
func (m *Machine) Start(ctx context.Context) {
	m.mu.Lock()
	events := m.activateLocked(ctx, 0)
	m.mu.Unlock()
	m.emit(ctx, events)
}

// Restart is identical to Start; the distinct name keeps call sites honest
// about intent (a "restart tutorial" affordance vs. first run).
func (m *Machine) Restart(ctx context.Context) {
	m.Start(ctx)
}

// Resume activates the tour at the step after the persisted resume point,
// clamped to the catalog. Without a valid persisted value it behaves like
// Start.
func (m *Machine) Resume(ctx context.Context) {
	m.mu.Lock()
	events := m.activateLocked(ctx, m.resumeIndexLocked(ctx))
	m.mu.Unlock()
	m.emit(ctx, events)
}

// Toggle ends an active tour; otherwise it resumes when the tour has been
// seen before, and starts fresh when it has not.
func (m *Machine) Toggle(ctx context.Context) {
	m.mu.Lock()
	var events []pendingEvent
	if m.active {
		events = m.endLocked(ctx, domain.EndReasonSkipped)
	} else if m.hasSeen {
		events = m.activateLocked(ctx, m.resumeIndexLocked(ctx))
	} else {
		events = m.activateLocked(ctx, 0)
	}
	m.mu.Unlock()
	m.emit(ctx, events)
}

// NextStep advances the tour by one step. It is a no-op while the current
// step's required action is unsatisfied. Advancing from the last step ends
// the tour. Returns true when the state changed.
func (m *Machine) NextStep(ctx context.Context) bool {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return false
	}
	if !m.requiredActionMetLocked() {
		m.mu.Unlock()
		return false
	}

	var events []pendingEvent
	if m.stepIndex >= m.catalog.LastIndex() {
		events = m.endLocked(ctx, domain.EndReasonCompleted)
	} else {
		events = append(events, m.leaveEventLocked())
		m.stepIndex++
		events = append(events, m.enterLocked(ctx)...)
	}
	m.mu.Unlock()
	m.emit(ctx, events)
	return true
}

// PrevStep moves back one step. Moving backward never re-checks required
// actions. Returns true when the state changed.
func (m *Machine) PrevStep(ctx context.Context) bool {
	m.mu.Lock()
	if !m.active || m.stepIndex == 0 {
		m.mu.Unlock()
		return false
	}
	events := []pendingEvent{m.leaveEventLocked()}
	m.stepIndex--
	events = append(events, m.enterLocked(ctx)...)
	m.mu.Unlock()
	m.emit(ctx, events)
	return true
}

// SkipTutorial ends the tour early.
func (m *Machine) SkipTutorial(ctx context.Context) {
	m.mu.Lock()
	events := m.endLocked(ctx, domain.EndReasonSkipped)
	m.mu.Unlock()
	m.emit(ctx, events)
}

// End deactivates the tour, persisting the has-seen flag and the index that
// was active at the moment of the call (the resume point for a later tour).
func (m *Machine) End(ctx context.Context) {
	m.mu.Lock()
	events := m.endLocked(ctx, domain.EndReasonCompleted)
	m.mu.Unlock()
	m.emit(ctx, events)
}

// CheckRequiredAction reports whether the current step permits advancement:
// either it requires no action, or its action has been completed.
func (m *Machine) CheckRequiredAction() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requiredActionMetLocked()
}

// CompleteRequiredAction idempotently records the current step's required
// action as satisfied.
func (m *Machine) CompleteRequiredAction(ctx context.Context) {
	m.mu.Lock()
	var events []pendingEvent
	if m.active {
		events = m.completeActionLocked(m.catalog[m.stepIndex].ID)
	}
	m.mu.Unlock()
	m.emit(ctx, events)
}

// Close cancels pending timers. Further timer-driven completions are
// suppressed; the machine itself stays readable.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for h := range m.timers {
		h.t.Stop()
	}
	m.timers = make(map[*actionTimer]struct{})
}

// activateLocked moves Inactive -> Active(index).
func (m *Machine) activateLocked(ctx context.Context, index int) []pendingEvent {
	m.active = true
	m.stepIndex = m.catalog.Clamp(index)
	m.completed = make(map[string]struct{})

	events := []pendingEvent{{
		hook:  hookTourStart,
		event: m.eventLocked(domain.EventTourStart, ""),
	}}
	return append(events, m.enterLocked(ctx)...)
}

// endLocked captures the resume point, deactivates, and persists the
// terminal flags. Persistence failures are logged; the in-memory state
// stays authoritative for the session.
func (m *Machine) endLocked(ctx context.Context, reason string) []pendingEvent {
	if !m.active {
		return nil
	}
	captured := m.stepIndex

	events := []pendingEvent{
		m.leaveEventLocked(),
		{hook: hookTourEnd, event: m.eventLocked(domain.EventTourEnd, reason)},
	}

	m.active = false
	m.stepIndex = 0
	m.completed = make(map[string]struct{})
	m.hasSeen = true

	m.persist(ctx, KeyHasSeenTutorial, "true")
	m.persist(ctx, KeyLastCompletedStep, strconv.Itoa(captured))
	return events
}

// enterLocked records the newly current step as viewed and builds its enter
// event. Viewed-step bookkeeping never duplicates ids, even under rapid
// back/forward revisits.
func (m *Machine) enterLocked(ctx context.Context) []pendingEvent {
	id := m.catalog[m.stepIndex].ID
	if _, seen := m.viewedSet[id]; !seen {
		m.viewedSet[id] = struct{}{}
		m.viewed = append(m.viewed, id)
		m.persistViewedLocked(ctx)
	}
	return []pendingEvent{{
		hook:  hookStepEnter,
		event: m.eventLocked(domain.EventStepEnter, ""),
	}}
}

func (m *Machine) leaveEventLocked() pendingEvent {
	return pendingEvent{
		hook:  hookStepLeave,
		event: m.eventLocked(domain.EventStepLeave, ""),
	}
}

func (m *Machine) completeActionLocked(id string) []pendingEvent {
	if _, done := m.completed[id]; done {
		return nil // idempotent: no observable change
	}
	m.completed[id] = struct{}{}
	ev := m.eventLocked(domain.EventActionComplete, "")
	ev.StepID = id
	return []pendingEvent{{hook: hookActionComplete, event: ev}}
}

func (m *Machine) requiredActionMetLocked() bool {
	if !m.active {
		return true
	}
	step := m.catalog[m.stepIndex]
	if !step.RequireAction {
		return true
	}
	_, done := m.completed[step.ID]
	return done
}

// resumeIndexLocked computes the resume point from the persisted last
// completed step: min(last+1, lastIndex), or zero when absent or malformed.
func (m *Machine) resumeIndexLocked(ctx context.Context) int {
	raw, err := m.store.Get(ctx, KeyLastCompletedStep)
	if err != nil {
		return 0
	}
	last, err := strconv.Atoi(raw)
	if err != nil {
		m.logger.Warn("malformed persisted resume point, starting over", "value", raw, "err", err)
		return 0
	}
	return m.catalog.Clamp(last + 1)
}

// loadPersisted restores the cross-session subset of the state. Malformed
// values degrade to defaults; nothing here can fail construction.
func (m *Machine) loadPersisted(ctx context.Context) {
	if raw, err := m.store.Get(ctx, KeyHasSeenTutorial); err == nil {
		m.hasSeen = raw == "true"
	}

	raw, err := m.store.Get(ctx, KeyViewedSteps)
	if err != nil {
		return
	}
	var viewed []string
	if err := json.Unmarshal([]byte(raw), &viewed); err != nil {
		m.logger.Warn("malformed persisted viewed steps, resetting", "err", err)
		return
	}
	for _, id := range viewed {
		if _, seen := m.viewedSet[id]; seen {
			continue
		}
		m.viewedSet[id] = struct{}{}
		m.viewed = append(m.viewed, id)
	}
}

func (m *Machine) persistViewedLocked(ctx context.Context) {
	raw, err := json.Marshal(m.viewed)
	if err != nil {
		m.logger.Warn("failed to marshal viewed steps", "err", err)
		return
	}
	m.persist(ctx, KeyViewedSteps, string(raw))
}

// persist writes one key, logging instead of failing: storage being
// unavailable must never break the running tour.
func (m *Machine) persist(ctx context.Context, key, value string) {
	if err := m.store.Set(ctx, key, value); err != nil {
		m.logger.Warn("failed to persist tour state", "key", key, "err", err)
	}
}

// eventLocked builds an event from the current state.
func (m *Machine) eventLocked(t domain.EventType, reason string) *domain.TourEvent {
	ev := &domain.TourEvent{
		Timestamp: time.Now(),
		Type:      t,
		StepIndex: m.stepIndex,
		Progress:  m.progressLocked(),
		Reason:    reason,
	}
	if m.active {
		ev.StepID = m.catalog[m.stepIndex].ID
	}
	return ev
}

type hookKind int

const (
	hookTourStart hookKind = iota
	hookTourEnd
	hookStepEnter
	hookStepLeave
	hookActionComplete
)

type pendingEvent struct {
	hook  hookKind
	event *domain.TourEvent
}

// emit runs hooks outside the state lock so a hook can never deadlock the
// machine. Hooks must still not call back into it.
func (m *Machine) emit(ctx context.Context, events []pendingEvent) {
	for _, pe := range events {
		var fn func(context.Context, *domain.TourEvent)
		switch pe.hook {
		case hookTourStart:
			fn = m.hooks.OnTourStart
		case hookTourEnd:
			fn = m.hooks.OnTourEnd
		case hookStepEnter:
			fn = m.hooks.OnStepEnter
		case hookStepLeave:
			fn = m.hooks.OnStepLeave
		case hookActionComplete:
			fn = m.hooks.OnActionComplete
		}
		if fn != nil {
			fn(ctx, pe.event)
		}
	}
}
