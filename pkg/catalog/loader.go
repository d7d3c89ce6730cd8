// Package catalog loads step catalogs from YAML documents and ships the
// built-in ShiftSync tour.
package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// FileLoader reads a catalog from a YAML file on each Load, so an edited
// catalog is picked up by simply restarting the tour.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader for the given path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load implements ports.CatalogLoader.
func (l *FileLoader) Load(ctx context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", l.Path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", l.Path, err)
	}
	return cat, nil
}

// document is the YAML shape: a top-level "steps" list plus optional
// metadata the engine ignores.
type document struct {
	Name  string `mapstructure:"name"`
	Steps []any  `mapstructure:"steps"`
}

// Parse decodes a YAML catalog document and validates the result.
// The two-phase decode (YAML into generic maps, then mapstructure into the
// typed descriptors) keeps the YAML layer ignorant of the domain types and
// gives field-level errors instead of a bare line number.
func Parse(data []byte) (domain.Catalog, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	var doc document
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid catalog document: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	cat := make(domain.Catalog, 0, len(doc.Steps))
	for i, rawStep := range doc.Steps {
		var step domain.StepDescriptor
		if err := mapstructure.Decode(rawStep, &step); err != nil {
			return nil, fmt.Errorf("invalid step at index %d: %w", i, err)
		}
		cat = append(cat, step)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}
