package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	tour "github.com/josephwaugh312/shiftsync-tour"
	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/file"
	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/memory"
	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/redis"
	"github.com/josephwaugh312/shiftsync-tour/pkg/catalog"
	"github.com/josephwaugh312/shiftsync-tour/pkg/observability"
	"github.com/josephwaugh312/shiftsync-tour/pkg/persistence/middleware"
	"github.com/josephwaugh312/shiftsync-tour/pkg/ports"
)

// CreateEngine initializes a tour engine with standard CLI conventions.
func CreateEngine(ctx context.Context, opts RunOptions, logger *slog.Logger) (*tour.Engine, error) {
	store, err := createStore(opts)
	if err != nil {
		return nil, err
	}
	engineOpts := []tour.Option{
		tour.WithLogger(logger),
		tour.WithStore(store),
	}
	hooks := opts.Hooks
	if opts.Debug {
		hooks = observability.Chain(hooks, createDebugHooks(logger))
	}
	engineOpts = append(engineOpts, tour.WithLifecycleHooks(hooks))
	if opts.CatalogPath != "" {
		engineOpts = append(engineOpts, tour.WithCatalogLoader(catalog.NewFileLoader(opts.CatalogPath)))
	}

	engine, err := tour.New(ctx, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

func createStore(opts RunOptions) (ports.KeyValueStore, error) {
	var store ports.KeyValueStore
	switch opts.StoreKind {
	case StoreFile:
		store = file.New(opts.StorePath)
	case StoreRedis:
		store = redis.New(opts.RedisAddr, "", 0)
	default:
		store = memory.NewStore()
	}

	var mws []middleware.Middleware
	if opts.StoreNamespace != "" {
		mws = append(mws, middleware.NewNamespaceMiddleware(opts.StoreNamespace))
	}
	if opts.StoreKey != "" {
		key, err := base64.StdEncoding.DecodeString(opts.StoreKey)
		if err != nil {
			return nil, fmt.Errorf("invalid store key: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("store key must decode to 32 bytes, got %d", len(key))
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	return middleware.Wrap(store, mws...), nil
}
