package domain

// MobileMaxWidth is the viewport width, in pixels, at or below which the
// host app renders its mobile navigation structure.
const MobileMaxWidth = 768

// Rect is an axis-aligned rectangle in page coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// MidX returns the horizontal midpoint.
func (r Rect) MidX() float64 { return r.Left + r.Width/2 }

// MidY returns the vertical midpoint.
func (r Rect) MidY() float64 { return r.Top + r.Height/2 }

// Empty reports whether the rectangle has no rendered area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Viewport describes the visible window and its scroll offsets.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`
}

// Device classifies the viewport by the host app's responsive breakpoint.
func (v Viewport) Device() DeviceClass {
	if v.Width <= MobileMaxWidth {
		return DeviceMobile
	}
	return DeviceDesktop
}

// Unit distinguishes pixel-valued coordinates from viewport-relative
// percentages. Percent placements are never clamped; they are already
// viewport-relative.
type Unit int

const (
	Pixels Unit = iota
	Percent
)

// Coord is a single placement coordinate.
type Coord struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Px builds a pixel coordinate.
func Px(v float64) Coord { return Coord{Value: v, Unit: Pixels} }

// Pct builds a percentage coordinate.
func Pct(v float64) Coord { return Coord{Value: v, Unit: Percent} }

// PopoverPosition is the computed placement of the step popover.
// Transform carries the CSS transform that centers the assumed footprint
// on the anchor coordinates.
type PopoverPosition struct {
	Top       Coord   `json:"top"`
	Left      Coord   `json:"left"`
	Transform string  `json:"transform,omitempty"`
	Width     float64 `json:"width,omitempty"`
	MaxWidth  float64 `json:"max_width,omitempty"`
}

// PointerPosition is the document-relative anchor of the decorative pointer.
type PointerPosition struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// OverlayGeometry is the full computed placement for one step: the highlight
// box around the target, the optional pointer, and the popover. It is
// recomputed on step change, viewport resize, and scroll; it owns no identity
// beyond the current render cycle.
type OverlayGeometry struct {
	Highlight *Rect            `json:"highlight,omitempty"`
	Pointer   *PointerPosition `json:"pointer,omitempty"`
	Popover   PopoverPosition  `json:"popover"`
}
