// Package middleware provides composable wrappers around a KeyValueStore.
// Middlewares let deployments add encryption at rest or per-user key
// scoping without the engine knowing about either.
package middleware

import "github.com/josephwaugh312/shiftsync-tour/pkg/ports"

// Middleware allows wrapping a KeyValueStore to add behavior.
type Middleware func(ports.KeyValueStore) ports.KeyValueStore

// Wrap applies middlewares to a store. The first middleware becomes the
// outermost layer.
func Wrap(store ports.KeyValueStore, mws ...Middleware) ports.KeyValueStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
