package tour

import (
	"context"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

type ctxKey struct{}

// NewContext returns a context carrying the engine, so deeply nested UI
// code can reach the tour without threading it through every call.
func NewContext(ctx context.Context, e *Engine) context.Context {
	return context.WithValue(ctx, ctxKey{}, e)
}

// FromContext extracts the engine installed by NewContext.
func FromContext(ctx context.Context) (*Engine, error) {
	e, ok := ctx.Value(ctxKey{}).(*Engine)
	if !ok {
		return nil, domain.ErrNoEngine
	}
	return e, nil
}

// MustFromContext is FromContext for call sites that cannot exist outside
// an engine scope.
func MustFromContext(ctx context.Context) *Engine {
	e, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return e
}
