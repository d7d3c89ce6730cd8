package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// Store implements ports.KeyValueStore over the page's localStorage, which
// keeps the tour's persistence exactly where the original web client kept
// it: keys like "hasSeenTutorial" survive page reloads with no backend.
type Store struct {
	page *rod.Page
}

// NewStore wraps the page's localStorage.
func NewStore(page *rod.Page) *Store {
	return &Store{page: page}
}

// Get returns the stored value, or domain.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	res, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:      `(key) => localStorage.getItem(key)`,
		JSArgs:  []interface{}{key},
		ByValue: true,
	})
	if err != nil {
		return "", fmt.Errorf("localStorage get failed: %w", err)
	}
	if res.Value.Nil() {
		return "", domain.ErrKeyNotFound
	}
	return res.Value.Str(), nil
}

// Set stores the value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:      `(key, value) => localStorage.setItem(key, value)`,
		JSArgs:  []interface{}{key, value},
		ByValue: true,
	})
	if err != nil {
		return fmt.Errorf("localStorage set failed: %w", err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:      `(key) => localStorage.removeItem(key)`,
		JSArgs:  []interface{}{key},
		ByValue: true,
	})
	if err != nil {
		return fmt.Errorf("localStorage delete failed: %w", err)
	}
	return nil
}
