package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tour "github.com/josephwaugh312/shiftsync-tour"
	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/memory"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/session"
)

func smallCatalog() domain.Catalog {
	return domain.Catalog{
		{ID: "welcome", Target: "body", Title: "Welcome"},
		{ID: "finish", Target: "body", Title: "Done"},
	}
}

func newManager(t *testing.T) (*session.Manager, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	mgr := session.NewManager(session.SharedStoreFactory(store, tour.WithCatalog(smallCatalog())))
	t.Cleanup(func() { mgr.Shutdown(context.Background()) })
	return mgr, store
}

func TestManager_IsolatesSessions(t *testing.T) {
	mgr, store := newManager(t)
	ctx := context.Background()

	err := mgr.With(ctx, "alice", func(e *tour.Engine) error {
		e.Start(ctx)
		e.Next(ctx)
		return nil
	})
	require.NoError(t, err)

	err = mgr.With(ctx, "bob", func(e *tour.Engine) error {
		assert.False(t, e.State().Active, "bob must not inherit alice's tour")
		return nil
	})
	require.NoError(t, err)

	// Alice's progress persisted under her namespace.
	v, err := store.Get(ctx, "alice:viewedTutorialSteps")
	require.NoError(t, err)
	assert.Contains(t, v, "welcome")
	_, err = store.Get(ctx, "bob:viewedTutorialSteps")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestManager_ActiveTourSurvivesRelease(t *testing.T) {
	mgr, _ := newManager(t)
	ctx := context.Background()

	engine, release, err := mgr.Acquire(ctx, "alice")
	require.NoError(t, err)
	engine.Start(ctx)
	release(ctx)

	// Same engine, still mid-tour.
	again, release2, err := mgr.Acquire(ctx, "alice")
	require.NoError(t, err)
	defer release2(ctx)
	assert.Same(t, engine, again)
	assert.True(t, again.State().Active)
}

func TestManager_EvictRespectsHolders(t *testing.T) {
	mgr, _ := newManager(t)
	ctx := context.Background()

	_, release, err := mgr.Acquire(ctx, "alice")
	require.NoError(t, err)

	assert.False(t, mgr.Evict(ctx, "alice"), "held session must not be evicted")
	release(ctx)
	release(ctx) // double release is a no-op
	assert.True(t, mgr.Evict(ctx, "alice"))
	assert.Equal(t, 0, mgr.Len())
}

func TestManager_ConcurrentAcquire(t *testing.T) {
	mgr, _ := newManager(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.With(ctx, "shared", func(e *tour.Engine) error {
				e.Start(ctx)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, mgr.Len(), "all goroutines must share one engine")
}
