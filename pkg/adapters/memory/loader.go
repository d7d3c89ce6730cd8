package memory

import (
	"context"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// CatalogLoader implements ports.CatalogLoader over an in-memory catalog.
type CatalogLoader struct {
	catalog domain.Catalog
}

// NewCatalogLoader wraps a fixed catalog.
func NewCatalogLoader(steps ...domain.StepDescriptor) *CatalogLoader {
	return &CatalogLoader{catalog: domain.Catalog(steps)}
}

// Load returns the catalog after validating its invariants.
func (l *CatalogLoader) Load(ctx context.Context) (domain.Catalog, error) {
	if err := l.catalog.Validate(); err != nil {
		return nil, err
	}
	return l.catalog, nil
}
