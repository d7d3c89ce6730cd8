package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/memory"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/josephwaugh312/shiftsync-tour/pkg/persistence/middleware"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

func TestWrappedStore_MeetsContract(t *testing.T) {
	key := make([]byte, 32)
	store := middleware.Wrap(memory.NewStore(),
		middleware.NewNamespaceMiddleware("contract"),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)
	ports.RunKeyValueStoreContract(t, store)
}

func TestNamespaceMiddleware_IsolatesUsers(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()

	alice := middleware.Wrap(underlying, middleware.NewNamespaceMiddleware("alice"))
	bob := middleware.Wrap(underlying, middleware.NewNamespaceMiddleware("bob"))

	if err := alice.Set(ctx, "lastCompletedStep", "5"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Bob must not see Alice's progress.
	if _, err := bob.Get(ctx, "lastCompletedStep"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound for bob, got %v", err)
	}

	// The raw key carries the prefix.
	raw, err := underlying.Get(ctx, "alice:lastCompletedStep")
	if err != nil {
		t.Fatalf("Underlying get failed: %v", err)
	}
	if raw != "5" {
		t.Errorf("Expected '5', got %q", raw)
	}

	if err := alice.Delete(ctx, "lastCompletedStep"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := alice.Get(ctx, "lastCompletedStep"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestWrap_OrderIsOutermostFirst(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()

	key := make([]byte, 32)
	store := middleware.Wrap(underlying,
		middleware.NewNamespaceMiddleware("u1"),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)

	if err := store.Set(ctx, "hasSeenTutorial", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Namespace is outermost, so the raw key is prefixed and the value encrypted.
	raw, err := underlying.Get(ctx, "u1:hasSeenTutorial")
	if err != nil {
		t.Fatalf("Underlying get failed: %v", err)
	}
	if raw == "true" {
		t.Fatal("Expected encrypted value under the namespaced key")
	}

	value, err := store.Get(ctx, "hasSeenTutorial")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "true" {
		t.Errorf("Expected 'true', got %q", value)
	}
}
