package runtime

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/memory"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		{ID: "welcome", Title: "Welcome", Position: domain.PositionCenter},
		{ID: "calendar", Target: "#calendar", Title: "Calendar", Position: domain.PositionBottom},
		{ID: "employee-management", Target: "#employees", Title: "Employees",
			Position: domain.PositionRight, RequireAction: true, Route: "/employees"},
		{ID: "finish", Title: "Done", Position: domain.PositionCenter},
	}
}

func newTestMachine(t *testing.T, opts ...Option) (*Machine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	m, err := NewMachine(context.Background(), testCatalog(), store, opts...)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m, store
}

func TestNewMachine_RejectsInvalidCatalog(t *testing.T) {
	_, err := NewMachine(context.Background(), domain.Catalog{}, memory.NewStore())
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestStart_ActivatesAtFirstStep(t *testing.T) {
	m, _ := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)

	state := m.Snapshot()
	assert.True(t, state.Active)
	assert.Equal(t, 0, state.StepIndex)
	assert.Equal(t, 0, state.Progress)
	assert.Equal(t, []string{"welcome"}, state.ViewedSteps)
}

func TestProgress_ReachesHundredAtLastStep(t *testing.T) {
	m, _ := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)
	assert.Equal(t, 0, m.Progress())

	require.True(t, m.NextStep(ctx))
	assert.Equal(t, 33, m.Progress())

	m.CompleteRequiredAction(ctx) // not yet on the gated step, but harmless
	require.True(t, m.NextStep(ctx))
	assert.Equal(t, 67, m.Progress())

	m.CompleteRequiredAction(ctx)
	require.True(t, m.NextStep(ctx))
	assert.Equal(t, 100, m.Progress())
}

func TestNextStep_BlockedUntilRequiredActionCompletes(t *testing.T) {
	m, _ := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.CompleteRequiredAction(ctx)
	m.NextStep(ctx) // now on employee-management
	require.Equal(t, 2, m.Snapshot().StepIndex)

	assert.False(t, m.CheckRequiredAction())
	assert.False(t, m.NextStep(ctx), "advance must be refused while gated")
	assert.Equal(t, 2, m.Snapshot().StepIndex)

	m.CompleteRequiredAction(ctx)
	assert.True(t, m.CheckRequiredAction())
	assert.True(t, m.NextStep(ctx))
	assert.Equal(t, 3, m.Snapshot().StepIndex)
}

func TestNextStep_FromLastStepEndsTour(t *testing.T) {
	m, store := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)
	advanceToLast(t, m)

	require.True(t, m.NextStep(ctx))

	state := m.Snapshot()
	assert.False(t, state.Active)
	assert.True(t, state.HasSeenTutorial)

	seen, err := store.Get(ctx, KeyHasSeenTutorial)
	require.NoError(t, err)
	assert.Equal(t, "true", seen)

	last, err := store.Get(ctx, KeyLastCompletedStep)
	require.NoError(t, err)
	assert.Equal(t, "3", last)
}

func TestPrevStep_NoOpAtFirstStep(t *testing.T) {
	m, _ := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)
	assert.False(t, m.PrevStep(ctx))
	assert.Equal(t, 0, m.Snapshot().StepIndex)

	require.True(t, m.NextStep(ctx))
	assert.True(t, m.PrevStep(ctx))
	assert.Equal(t, 0, m.Snapshot().StepIndex)
}

func TestViewedSteps_NoDuplicatesOnRevisit(t *testing.T) {
	m, store := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.PrevStep(ctx)
	m.NextStep(ctx)
	m.PrevStep(ctx)

	state := m.Snapshot()
	assert.Equal(t, []string{"welcome", "calendar"}, state.ViewedSteps)

	raw, err := store.Get(ctx, KeyViewedSteps)
	require.NoError(t, err)
	var persisted []string
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, []string{"welcome", "calendar"}, persisted)
}

func TestSkip_PersistsResumePoint(t *testing.T) {
	m, store := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.SkipTutorial(ctx)

	assert.False(t, m.Snapshot().Active)

	last, err := store.Get(ctx, KeyLastCompletedStep)
	require.NoError(t, err)
	assert.Equal(t, "1", last)
}

func TestResume_ContinuesAfterPersistedStep(t *testing.T) {
	store := memory.NewStore()
	store.Seed(map[string]string{
		KeyHasSeenTutorial:   "true",
		KeyLastCompletedStep: "1",
	})
	m, err := NewMachine(context.Background(), testCatalog(), store)
	require.NoError(t, err)
	t.Cleanup(m.Close)

	m.Resume(context.Background())

	state := m.Snapshot()
	assert.True(t, state.Active)
	assert.Equal(t, 2, state.StepIndex)
}

func TestResume_EmptyStoreStartsAtFirstStep(t *testing.T) {
	m, _ := newTestMachine(t)

	m.Resume(context.Background())

	state := m.Snapshot()
	assert.True(t, state.Active)
	assert.Equal(t, 0, state.StepIndex)
}

func TestResume_ClampsToLastStep(t *testing.T) {
	store := memory.NewStore()
	store.Seed(map[string]string{KeyLastCompletedStep: "99"})
	m, err := NewMachine(context.Background(), testCatalog(), store)
	require.NoError(t, err)
	t.Cleanup(m.Close)

	m.Resume(context.Background())
	assert.Equal(t, 3, m.Snapshot().StepIndex)
}

func TestToggle_DispatchesOnStateAndHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Active Tour Ends", func(t *testing.T) {
		m, _ := newTestMachine(t)
		m.Start(ctx)
		m.Toggle(ctx)
		assert.False(t, m.Snapshot().Active)
	})

	t.Run("Unseen Starts Fresh", func(t *testing.T) {
		m, _ := newTestMachine(t)
		m.Toggle(ctx)
		state := m.Snapshot()
		assert.True(t, state.Active)
		assert.Equal(t, 0, state.StepIndex)
	})

	t.Run("Seen Resumes", func(t *testing.T) {
		store := memory.NewStore()
		store.Seed(map[string]string{
			KeyHasSeenTutorial:   "true",
			KeyLastCompletedStep: "0",
		})
		m, err := NewMachine(ctx, testCatalog(), store)
		require.NoError(t, err)
		t.Cleanup(m.Close)

		m.Toggle(ctx)
		state := m.Snapshot()
		assert.True(t, state.Active)
		assert.Equal(t, 1, state.StepIndex)
	})
}

func TestMalformedPersistence_DegradesToDefaults(t *testing.T) {
	store := memory.NewStore()
	store.Seed(map[string]string{
		KeyHasSeenTutorial:   "yes please",
		KeyLastCompletedStep: "not-a-number",
		KeyViewedSteps:       "{broken json",
	})
	m, err := NewMachine(context.Background(), testCatalog(), store)
	require.NoError(t, err)
	t.Cleanup(m.Close)

	state := m.Snapshot()
	assert.False(t, state.HasSeenTutorial)
	assert.Empty(t, state.ViewedSteps)

	m.Resume(context.Background())
	assert.Equal(t, 0, m.Snapshot().StepIndex, "corrupt resume point starts over")
}

func TestHandleClick_CompletesGatedStepImmediately(t *testing.T) {
	m, _ := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.NextStep(ctx) // employee-management
	require.Equal(t, 2, m.Snapshot().StepIndex)

	m.HandleClick(ctx, "/somewhere-else")
	assert.False(t, m.CheckRequiredAction())

	m.HandleClick(ctx, "/employees")
	assert.True(t, m.CheckRequiredAction())
}

func TestHandleRouteChange_CompletesAfterDelay(t *testing.T) {
	m, _ := newTestMachine(t, WithActionDelay(10*time.Millisecond))
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.NextStep(ctx)
	require.Equal(t, 2, m.Snapshot().StepIndex)

	m.HandleRouteChange(ctx, "/employees")
	assert.False(t, m.CheckRequiredAction(), "completion must wait for the delay")

	assert.Eventually(t, m.CheckRequiredAction, time.Second, 5*time.Millisecond)
}

func TestHandleRouteChange_ZeroDelayUnderContention(t *testing.T) {
	// With no debounce the timer can fire before HandleRouteChange returns;
	// hammering the signal alongside Close must stay race-free.
	m, _ := newTestMachine(t, WithActionDelay(0))
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.NextStep(ctx)
	require.Equal(t, 2, m.Snapshot().StepIndex)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.HandleRouteChange(ctx, "/employees")
		}()
	}
	wg.Wait()

	assert.Eventually(t, m.CheckRequiredAction, time.Second, time.Millisecond)
	m.Close()
}

func TestHandleRouteChange_LateTimerForStaleStepIsDropped(t *testing.T) {
	m, _ := newTestMachine(t, WithActionDelay(10*time.Millisecond))
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.NextStep(ctx)

	m.HandleRouteChange(ctx, "/employees")
	m.PrevStep(ctx) // move off the gated step before the timer fires

	time.Sleep(50 * time.Millisecond)
	m.NextStep(ctx) // back on employee-management
	assert.False(t, m.CheckRequiredAction(), "stale completion must not apply")
}

func TestHandleRouteChange_IgnoresNonMatchingRoute(t *testing.T) {
	m, _ := newTestMachine(t, WithActionDelay(time.Millisecond))
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.NextStep(ctx)

	m.HandleRouteChange(ctx, "/settings")
	time.Sleep(20 * time.Millisecond)
	assert.False(t, m.CheckRequiredAction())
}

func TestHandleKey_ShortcutToggles(t *testing.T) {
	m, _ := newTestMachine(t)
	ctx := context.Background()

	m.HandleKey(ctx, domain.KeyEvent{Key: "T", Shift: true})
	assert.True(t, m.Snapshot().Active, "shortcut match is case-insensitive")

	m.HandleKey(ctx, domain.KeyEvent{Key: "t", Shift: true, EditableTarget: true})
	assert.True(t, m.Snapshot().Active, "typing in a field must not toggle")

	m.HandleKey(ctx, domain.KeyEvent{Key: "t"})
	assert.True(t, m.Snapshot().Active, "missing modifier must not toggle")

	m.HandleKey(ctx, domain.KeyEvent{Key: "t", Shift: true})
	assert.False(t, m.Snapshot().Active)
}

func TestHooks_ReceiveLifecycleEvents(t *testing.T) {
	var mu sync.Mutex
	var got []domain.EventType
	record := func(_ context.Context, ev *domain.TourEvent) {
		mu.Lock()
		got = append(got, ev.Type)
		mu.Unlock()
	}
	hooks := domain.LifecycleHooks{
		OnTourStart:      record,
		OnTourEnd:        record,
		OnStepEnter:      record,
		OnStepLeave:      record,
		OnActionComplete: record,
	}

	m, _ := newTestMachine(t, WithHooks(hooks))
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.SkipTutorial(ctx)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.EventType{
		domain.EventTourStart,
		domain.EventStepEnter,
		domain.EventStepLeave,
		domain.EventStepEnter,
		domain.EventStepLeave,
		domain.EventTourEnd,
	}, got)
}

func TestFullRun_EndToEnd(t *testing.T) {
	m, store := newTestMachine(t)
	ctx := context.Background()

	m.Start(ctx)
	m.NextStep(ctx)
	m.NextStep(ctx) // employee-management, gated

	assert.False(t, m.NextStep(ctx))
	m.HandleClick(ctx, "/employees")
	require.True(t, m.NextStep(ctx))

	assert.Equal(t, 100, m.Progress())
	require.True(t, m.NextStep(ctx)) // advancing from the last step ends

	state := m.Snapshot()
	assert.False(t, state.Active)
	assert.True(t, state.HasSeenTutorial)
	assert.Equal(t, []string{"welcome", "calendar", "employee-management", "finish"}, state.ViewedSteps)

	raw, err := store.Get(ctx, KeyViewedSteps)
	require.NoError(t, err)
	var persisted []string
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Len(t, persisted, 4)
}

func advanceToLast(t *testing.T, m *Machine) {
	t.Helper()
	ctx := context.Background()
	for m.Snapshot().StepIndex < m.Catalog().LastIndex() {
		m.CompleteRequiredAction(ctx)
		require.True(t, m.NextStep(ctx))
	}
}
