// Package overlay computes on-screen placement for a tour step: the
// highlight box around the target, the optional pointer, and the popover.
// Everything here is pure arithmetic over rectangles; callers re-run it on
// step change, resize, and scroll.
package overlay

import (
	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// Positioner computes OverlayGeometry from a resolved target and a step.
type Positioner struct {
	cfg Config
}

// New creates a Positioner with the given placement tables.
func New(cfg Config) *Positioner {
	return &Positioner{cfg: cfg}
}

// Geometry computes the full overlay placement for one step.
//
// target is the resolved element's bounding rectangle in viewport
// coordinates, or nil when the step could not be anchored; a nil target
// degrades to centered placement rather than failing. Placement rules apply
// in priority order: device+step-id overrides, centered, center-bottom,
// pointer-cleared anchoring, plain anchoring, then a centered fallback.
func (p *Positioner) Geometry(target *domain.Rect, step domain.StepDescriptor, vp domain.Viewport) domain.OverlayGeometry {
	device := vp.Device()
	mobile := device == domain.DeviceMobile

	geo := domain.OverlayGeometry{}
	if target != nil {
		hb := p.highlightBox(*target, step, vp)
		geo.Highlight = &hb
	}

	geo.Popover = p.popover(target, step, vp, device)
	geo.Popover.MaxWidth = min(p.cfg.PopoverWidth.For(device), vp.Width-2*p.cfg.ClampMargin)

	if step.ShowPointer && target != nil && !p.pointerSuppressed(step, mobile) {
		pp := p.pointer(*target, step, vp)
		geo.Pointer = &pp
	}

	return geo
}

func (p *Positioner) pointerSuppressed(step domain.StepDescriptor, mobile bool) bool {
	if !mobile {
		return false
	}
	return p.cfg.PointerFreeMobile[step.ID] || p.cfg.MobileCentered[step.ID]
}

func (p *Positioner) popover(target *domain.Rect, step domain.StepDescriptor, vp domain.Viewport, device domain.DeviceClass) domain.PopoverPosition {
	mobile := device == domain.DeviceMobile

	// Rule 1: device + step-id overrides.
	if mobile && p.cfg.MobileCentered[step.ID] {
		return p.centered(step)
	}

	// Rule 2: no target, or an explicitly centered step.
	if target == nil || step.Position == domain.PositionCenter {
		return p.centered(step)
	}

	// Rule 3: anchored to the viewport bottom.
	if step.Position == domain.PositionCenterBottom {
		top := vp.Height - p.cfg.CenterBottomOffset.For(device) - p.cfg.PopoverHeight.For(device)
		pos := domain.PopoverPosition{
			Top:       domain.Px(top),
			Left:      domain.Pct(50),
			Transform: "translateX(-50%)",
		}
		return p.clamp(pos, vp, device)
	}

	// Rules 4 and 5: target-relative, with extra clearance when a pointer
	// graphic sits between the popover and the target.
	margin := p.cfg.EdgeMargin
	if step.ShowPointer {
		margin = p.cfg.PointerClearance.For(device)
	}

	var pos domain.PopoverPosition
	switch step.Position {
	case domain.PositionTop:
		pos = domain.PopoverPosition{
			Top:       domain.Px(target.Top - margin),
			Left:      domain.Px(target.MidX()),
			Transform: "translate(-50%, -100%)",
		}
	case domain.PositionBottom:
		pos = domain.PopoverPosition{
			Top:       domain.Px(target.Bottom() + margin),
			Left:      domain.Px(target.MidX()),
			Transform: "translateX(-50%)",
		}
	case domain.PositionLeft:
		if mobile {
			return p.centered(step)
		}
		pos = domain.PopoverPosition{
			Top:       domain.Px(target.MidY()),
			Left:      domain.Px(target.Left - margin),
			Transform: "translate(-100%, -50%)",
		}
	case domain.PositionRight:
		if mobile {
			return p.centered(step)
		}
		pos = domain.PopoverPosition{
			Top:       domain.Px(target.MidY()),
			Left:      domain.Px(target.Right() + margin),
			Transform: "translateY(-50%)",
		}
	default:
		// Rule 6: unrecognized or missing hint with a target present.
		return p.centered(step)
	}

	return p.clamp(pos, vp, device)
}

// centered places the popover relative to the viewport. A handful of steps
// carry a bespoke vertical offset so they do not obscure a specific
// background region.
func (p *Positioner) centered(step domain.StepDescriptor) domain.PopoverPosition {
	topPct := 50.0
	if off, ok := p.cfg.CenterOffsets[step.ID]; ok {
		topPct = off.TopPercent
	}
	return domain.PopoverPosition{
		Top:       domain.Pct(topPct),
		Left:      domain.Pct(50),
		Transform: "translate(-50%, -50%)",
	}
}

// clamp keeps an assumed popover footprint inside the viewport. Only
// pixel-valued coordinates are clamped; percentage placements are already
// viewport-relative.
func (p *Positioner) clamp(pos domain.PopoverPosition, vp domain.Viewport, device domain.DeviceClass) domain.PopoverPosition {
	w := p.cfg.PopoverWidth.For(device)
	h := p.cfg.PopoverHeight.For(device)
	m := p.cfg.ClampMargin

	if pos.Left.Unit == domain.Pixels {
		pos.Left.Value = clampValue(pos.Left.Value, m, vp.Width-m-w)
	}
	if pos.Top.Unit == domain.Pixels {
		pos.Top.Value = clampValue(pos.Top.Value, m, vp.Height-m-h)
	}
	return pos
}

func clampValue(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// highlightBox expands the target rectangle by the configured padding and
// converts it from viewport-relative to document-relative coordinates.
// Very tall targets are capped at a fraction of the viewport height.
func (p *Positioner) highlightBox(target domain.Rect, step domain.StepDescriptor, vp domain.Viewport) domain.Rect {
	pad := Padding{
		Top:    p.cfg.HighlightPadding,
		Right:  p.cfg.HighlightPadding,
		Bottom: p.cfg.HighlightPadding,
		Left:   p.cfg.HighlightPadding,
	}
	if over, ok := p.cfg.EmphasisPadding[step.ID]; ok {
		pad = over
	}

	box := domain.Rect{
		Top:    target.Top - pad.Top + vp.ScrollY,
		Left:   target.Left - pad.Left + vp.ScrollX,
		Width:  target.Width + pad.Left + pad.Right,
		Height: target.Height + pad.Top + pad.Bottom,
	}

	if maxH := p.cfg.HighlightMaxHeightFrac * vp.Height; maxH > 0 && box.Height > maxH {
		box.Height = maxH
	}
	return box
}

// pointer computes the document-relative anchor for the decorative pointer
// from the per-direction offset tables.
func (p *Positioner) pointer(target domain.Rect, step domain.StepDescriptor, vp domain.Viewport) domain.PointerPosition {
	off, ok := p.cfg.PointerOffsets[step.Position]
	if !ok {
		off = p.cfg.PointerOffsets[""]
	}

	var top, left float64
	switch step.Position {
	case domain.PositionTop:
		top = target.Top + off.DTop
		left = target.MidX() + off.DLeft
	case domain.PositionBottom:
		top = target.Bottom() + off.DTop
		left = target.MidX() + off.DLeft
	case domain.PositionLeft:
		top = target.MidY() + off.DTop
		left = target.Left + off.DLeft
	case domain.PositionRight:
		top = target.MidY() + off.DTop
		left = target.Right() + off.DLeft
	default:
		top = target.Top + off.DTop
		left = target.Left + off.DLeft
	}

	return domain.PointerPosition{
		Top:  top + vp.ScrollY,
		Left: left + vp.ScrollX,
	}
}
