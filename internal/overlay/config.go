package overlay

import "github.com/josephwaugh312/shiftsync-tour/pkg/domain"

// DeviceValues holds a constant that differs by device class.
type DeviceValues struct {
	Desktop float64
	Mobile  float64
}

// For selects the value for a device class.
func (d DeviceValues) For(device domain.DeviceClass) float64 {
	if device == domain.DeviceMobile {
		return d.Mobile
	}
	return d.Desktop
}

// Padding expands a highlight box, per edge.
type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// CenterOffset overrides the vertical anchor of a centered popover, as a
// viewport percentage. Used to keep specific steps from obscuring a known
// background region.
type CenterOffset struct {
	TopPercent float64
}

// PointerOffset positions the decorative pointer relative to the target
// rectangle's reference point for a given direction.
type PointerOffset struct {
	DTop  float64
	DLeft float64
}

// Config carries the placement tables the positioner consults. All
// per-step-id special cases live here as data so they stay testable and the
// placement rules stay generic.
type Config struct {
	// EdgeMargin is the gap between a target edge and the popover.
	EdgeMargin float64
	// ClampMargin is the minimum distance kept between the popover footprint
	// and the viewport edges.
	ClampMargin float64
	// PopoverWidth and PopoverHeight are the assumed popover footprint used
	// for clamping.
	PopoverWidth  DeviceValues
	PopoverHeight DeviceValues
	// PointerClearance replaces EdgeMargin when the step shows a pointer, so
	// the popover clears the pointer graphic.
	PointerClearance DeviceValues
	// CenterBottomOffset is the distance from the viewport bottom for
	// center-bottom steps; the mobile value clears the bottom navigation bar.
	CenterBottomOffset DeviceValues
	// HighlightPadding expands the highlight box around the target.
	HighlightPadding float64
	// HighlightMaxHeightFrac caps very tall highlight boxes at a fraction of
	// the viewport height.
	HighlightMaxHeightFrac float64
	// EmphasisPadding overrides HighlightPadding for specific step ids.
	EmphasisPadding map[string]Padding
	// MobileCentered lists step ids that always render centered on mobile,
	// where the anchored layout is known to overflow narrow screens.
	MobileCentered map[string]bool
	// CenterOffsets gives specific step ids a bespoke centered placement.
	CenterOffsets map[string]CenterOffset
	// PointerFreeMobile lists step ids whose pointer is suppressed on mobile.
	PointerFreeMobile map[string]bool
	// PointerOffsets maps a position hint to the pointer anchor offsets.
	// The empty key is the fallback for unrecognized hints.
	PointerOffsets map[string]PointerOffset
}

// DefaultConfig returns the placement tables tuned for the ShiftSync app.
func DefaultConfig() Config {
	return Config{
		EdgeMargin:             10,
		ClampMargin:            20,
		PopoverWidth:           DeviceValues{Desktop: 320, Mobile: 280},
		PopoverHeight:          DeviceValues{Desktop: 300, Mobile: 260},
		PointerClearance:       DeviceValues{Desktop: 60, Mobile: 40},
		CenterBottomOffset:     DeviceValues{Desktop: 40, Mobile: 96},
		HighlightPadding:       8,
		HighlightMaxHeightFrac: 0.7,
		EmphasisPadding: map[string]Padding{
			"add-shift": {Top: 12, Right: 16, Bottom: 12, Left: 16},
		},
		MobileCentered: map[string]bool{
			"shift-templates":     true,
			"employee-management": true,
		},
		CenterOffsets: map[string]CenterOffset{
			"welcome": {TopPercent: 40},
		},
		PointerFreeMobile: map[string]bool{
			"calendar": true,
		},
		PointerOffsets: map[string]PointerOffset{
			domain.PositionTop:    {DTop: -48, DLeft: -20},
			domain.PositionBottom: {DTop: 16, DLeft: -20},
			domain.PositionLeft:   {DTop: -20, DLeft: -56},
			domain.PositionRight:  {DTop: -20, DLeft: 16},
			"":                    {DTop: -40, DLeft: -40},
		},
	}
}
