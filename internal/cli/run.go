// Package cli implements the command-level wiring shared by the tour
// binaries: engine construction from flags, signal handling, and the
// interactive session loop.
package cli

import (
	"fmt"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// Store kind names accepted by the --store flag.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	CatalogPath string // empty means the built-in ShiftSync catalog
	StoreKind   string
	StorePath   string // file store location, "" for the default
	RedisAddr   string
	// StoreKey enables encryption at rest when set. Base64, 32 bytes decoded.
	StoreKey string
	// StoreNamespace prefixes all persisted keys, scoping progress per user.
	StoreNamespace string
	Headless       bool
	Debug          bool
	Hooks          domain.LifecycleHooks // extra lifecycle hooks, e.g. metrics
}

// Execute handles the 'run' command logic.
func Execute(opts RunOptions) error {
	switch opts.StoreKind {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store kind %q (supported: memory, file, redis)", opts.StoreKind)
	}
	return RunSession(opts)
}
