package domain

import "fmt"

// Catalog is the ordered, immutable list of step descriptors consumed by the
// engine. The engine never mutates it.
type Catalog []StepDescriptor

var validPositions = map[string]bool{
	"":                   true, // engine falls back to centered placement
	PositionTop:          true,
	PositionBottom:       true,
	PositionLeft:         true,
	PositionRight:        true,
	PositionCenter:       true,
	PositionCenterBottom: true,
}

// Validate checks the catalog invariants: non-empty, unique non-empty ids,
// and known position hints.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(c))
	for i, step := range c {
		if step.ID == "" {
			return fmt.Errorf("step %d: missing id", i)
		}
		if seen[step.ID] {
			return fmt.Errorf("step %d: duplicate id %q", i, step.ID)
		}
		seen[step.ID] = true

		if !validPositions[step.Position] {
			return fmt.Errorf("step %q: unknown position %q", step.ID, step.Position)
		}
		for j, fb := range step.Fallbacks {
			switch fb.Kind {
			case FallbackSelector, FallbackText, FallbackShape:
			default:
				return fmt.Errorf("step %q: fallback %d: unknown kind %q", step.ID, j, fb.Kind)
			}
		}
	}
	return nil
}

// Index returns the position of the step with the given id, or -1.
func (c Catalog) Index(id string) int {
	for i, step := range c {
		if step.ID == id {
			return i
		}
	}
	return -1
}

// LastIndex returns the index of the final step.
func (c Catalog) LastIndex() int {
	return len(c) - 1
}

// Clamp limits an index to the valid range of the catalog.
func (c Catalog) Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > c.LastIndex() {
		return c.LastIndex()
	}
	return i
}
