package ports

import (
	"context"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// CatalogLoader defines how the engine retrieves its step catalog.
// This allows the catalog source (YAML file, embedded default, memory) to be
// decoupled from the engine.
type CatalogLoader interface {
	// Load returns the full, validated step catalog.
	Load(ctx context.Context) (domain.Catalog, error)
}
