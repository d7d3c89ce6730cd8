package dsl

import (
	"fmt"

	"github.com/josephwaugh312/shiftsync-tour/pkg/adapters/memory"
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// Builder manages catalog construction. Steps keep their declaration order.
type Builder struct {
	name  string
	order []string
	steps map[string]*StepBuilder
}

// New creates a new catalog builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		steps: make(map[string]*StepBuilder),
	}
}

// Step creates a new step in the catalog.
// If the step already exists, it returns the existing builder.
func (b *Builder) Step(id string) *StepBuilder {
	if sb, ok := b.steps[id]; ok {
		return sb
	}
	sb := &StepBuilder{
		step: domain.StepDescriptor{
			ID:       id,
			Target:   "body",
			Position: domain.PositionCenter,
		},
		builder: b,
	}
	b.steps[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Catalog compiles and validates the declared steps.
func (b *Builder) Catalog() (domain.Catalog, error) {
	cat := make(domain.Catalog, 0, len(b.order))
	for _, id := range b.order {
		cat = append(cat, b.steps[id].step)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %q invalid: %w", b.name, err)
	}
	return cat, nil
}

// Build compiles the catalog into an in-memory loader.
func (b *Builder) Build() (*memory.CatalogLoader, error) {
	cat, err := b.Catalog()
	if err != nil {
		return nil, err
	}
	return memory.NewCatalogLoader(cat...), nil
}
