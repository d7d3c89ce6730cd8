package middleware

import (
	"context"

	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

type namespaceMiddleware struct {
	next   ports.KeyValueStore
	prefix string
}

// NewNamespaceMiddleware creates a middleware that prefixes every key with
// "<namespace>:". Sharing one backing store between users (or between the
// tour and other app state) then cannot collide.
func NewNamespaceMiddleware(namespace string) Middleware {
	return func(next ports.KeyValueStore) ports.KeyValueStore {
		return &namespaceMiddleware{next: next, prefix: namespace + ":"}
	}
}

func (m *namespaceMiddleware) Get(ctx context.Context, key string) (string, error) {
	return m.next.Get(ctx, m.prefix+key)
}

func (m *namespaceMiddleware) Set(ctx context.Context, key, value string) error {
	return m.next.Set(ctx, m.prefix+key, value)
}

func (m *namespaceMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, m.prefix+key)
}
