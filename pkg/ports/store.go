package ports

import "context"

// KeyValueStore defines the interface for persisting tour state.
// It mirrors the shape of browser local storage: small string values under
// string keys. Implementations must be safe for concurrent use.
type KeyValueStore interface {
	// Get retrieves the value stored under key.
	// Returns domain.ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
