package graph

import (
	"fmt"
	"strings"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the map.
type GraphOverlay struct {
	ViewedSteps []string
	CurrentStep string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a catalog.
// It applies semantic styling:
// - First step: ((Circle))
// - Required-action step: [[Subroutine]], with the gating route on the arrow
// - Unanchored step: [/Parallelogram/]
// - Default: [Rectangle]
// It also applies overlay styles (Viewed/Current) if provided.
func GenerateMermaid(cat domain.Catalog, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, step := range cat {
		safeID := sanitizeMermaidID(step.ID)

		// Step Shape
		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))" // Circle
		case step.RequireAction:
			opener, closer = "[[", "]]" // Subroutine
		case !step.Anchored():
			opener, closer = "[/", "/]" // Parallelogram
		}

		label := fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, step.ID, closer)
		if step.RequireAction && step.Route != "" {
			// Annotate gated steps with the route that unlocks them
			label = fmt.Sprintf("    %s%s\"%s <br/> 🔒 %s\"%s\n", safeID, opener, step.ID, step.Route, closer)
		}
		sb.WriteString(label)

		// Transition to the next step
		if i < cat.LastIndex() {
			safeTo := sanitizeMermaidID(cat[i+1].ID)
			arrow := "-->"
			if step.RequireAction {
				condition := step.Route
				if condition == "" {
					condition = "action"
				}
				arrow = fmt.Sprintf("-- \"%s\" -->", condition)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef viewed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		viewedSet := make(map[string]bool)
		for _, id := range overlay.ViewedSteps {
			safeID := sanitizeMermaidID(id)
			if !viewedSet[safeID] && safeID != "" {
				viewedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s viewed;\n", safeID))
			}
		}

		if overlay.CurrentStep != "" {
			safeCurrent := sanitizeMermaidID(overlay.CurrentStep)
			sb.WriteString(fmt.Sprintf("    class %s current;\n", safeCurrent))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
