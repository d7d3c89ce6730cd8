package catalog

import "github.com/josephwaugh312/shiftsync-tour/pkg/domain"

// Default returns the built-in ShiftSync tour. The fallback chains mirror
// the app's real markup: stable ids where they exist, text or icon-shape
// probes where they do not.
func Default() domain.Catalog {
	return domain.Catalog{
		{
			ID:       "welcome",
			Title:    "Welcome to ShiftSync",
			Content:  "This quick tour walks you through scheduling your first week. Press Shift+T any time to pause or resume.",
			Position: domain.PositionCenter,
		},
		{
			ID:          "calendar",
			Target:      "#schedule-calendar",
			Title:       "Your schedule",
			Content:     "The calendar shows every shift for the selected week. Drag a shift to move it, or click an empty slot to create one.",
			Position:    domain.PositionBottom,
			ShowPointer: true,
			Fallbacks: []domain.Fallback{
				{Kind: domain.FallbackSelector, Selector: "[data-testid=\"calendar\"]"},
				{Kind: domain.FallbackSelector, Selector: ".calendar-grid"},
			},
		},
		{
			ID:          "add-shift",
			Target:      "#add-shift-button",
			Title:       "Add a shift",
			Content:     "Create a new shift from here. You can assign an employee right away or leave it open.",
			Position:    domain.PositionBottom,
			ShowPointer: true,
			Fallbacks: []domain.Fallback{
				{Kind: domain.FallbackText, Text: "Add Shift"},
				{Kind: domain.FallbackShape, Shape: "M12 4v16m8-8H4", Scope: "path"},
			},
		},
		{
			ID:       "shift-templates",
			Target:   "#shift-templates",
			Title:    "Shift templates",
			Content:  "Save recurring shifts as templates and apply a whole week in one click.",
			Position: domain.PositionRight,
			Fallbacks: []domain.Fallback{
				{Kind: domain.FallbackText, Text: "Templates", Device: domain.DeviceDesktop},
				{Kind: domain.FallbackSelector, Selector: "nav .templates-link", Device: domain.DeviceMobile},
			},
		},
		{
			ID:            "employee-management",
			Target:        "#nav-employees",
			Title:         "Manage your team",
			Content:       "Open the Employees page to continue. The tour resumes there.",
			Position:      domain.PositionRight,
			ShowPointer:   true,
			RequireAction: true,
			Route:         "/employees",
			ClickThrough:  true,
			Fallbacks: []domain.Fallback{
				{Kind: domain.FallbackText, Text: "Employees", Scope: "nav a"},
			},
		},
		{
			ID:       "settings",
			Target:   "#nav-settings",
			Title:    "Settings",
			Content:  "Configure locations, roles, and notification rules here.",
			Position: domain.PositionLeft,
		},
		{
			ID:       "finish",
			Title:    "You're all set",
			Content:  "That's the essentials. Reopen this tour from the help menu whenever you need a refresher.",
			Position: domain.PositionCenterBottom,
		},
	}
}
