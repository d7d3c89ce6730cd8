package runtime

import (
	"context"
	"time"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// HandleRouteChange reports a navigation to the given route. When the
// current step gates on reaching that route, its required action completes
// after the debounce delay. The completion is pinned to the step that was
// current at signal time; if the tour has moved on by the time the timer
// fires, the late completion is dropped.
func (m *Machine) HandleRouteChange(ctx context.Context, route string) {
	m.mu.Lock()
	if m.closed || !m.active {
		m.mu.Unlock()
		return
	}
	step := m.catalog[m.stepIndex]
	if !step.RequireAction || step.Route == "" || step.Route != route {
		m.mu.Unlock()
		return
	}
	stepID := step.ID

	// The callback only carries the handle, never the timer itself: the
	// timer lands in the handle under m.mu, before any reader can lock it.
	handle := &actionTimer{}
	m.timers[handle] = struct{}{}
	handle.t = time.AfterFunc(m.delay, func() {
		m.completeActionFor(context.WithoutCancel(ctx), stepID, handle)
	})
	m.mu.Unlock()
}

// HandleClick reports a click on a navigation element. When the clicked
// href is the current step's gating route, the required action completes
// immediately. Clicks and route changes may both fire for one navigation;
// completion is idempotent so the pair collapses to a single transition.
func (m *Machine) HandleClick(ctx context.Context, href string) {
	m.mu.Lock()
	var events []pendingEvent
	if m.active {
		step := m.catalog[m.stepIndex]
		if step.RequireAction && step.Route != "" && step.Route == href {
			events = m.completeActionLocked(step.ID)
		}
	}
	m.mu.Unlock()
	m.emit(ctx, events)
}

// HandleKey reports a keyboard event. The toggle shortcut is honored unless
// focus sits in an editable target, where the keystroke belongs to the
// user's text.
func (m *Machine) HandleKey(ctx context.Context, key domain.KeyEvent) {
	if key.EditableTarget {
		return
	}
	if m.shortcut.Matches(key) {
		m.Toggle(ctx)
	}
}

// RequestToggle is the programmatic equivalent of the keyboard shortcut,
// for help-menu entries and similar affordances.
func (m *Machine) RequestToggle(ctx context.Context) {
	m.Toggle(ctx)
}

// actionTimer is the identity under which a pending debounce timer is
// tracked. Close stops the timer through it; the timer callback never
// dereferences it.
type actionTimer struct {
	t *time.Timer
}

// completeActionFor applies a deferred completion for a specific step.
func (m *Machine) completeActionFor(ctx context.Context, stepID string, handle *actionTimer) {
	m.mu.Lock()
	delete(m.timers, handle)
	var events []pendingEvent
	if !m.closed && m.active && m.catalog[m.stepIndex].ID == stepID {
		events = m.completeActionLocked(stepID)
	}
	m.mu.Unlock()
	m.emit(ctx, events)
}
