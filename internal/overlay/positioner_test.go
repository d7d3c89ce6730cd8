package overlay

import (
	"testing"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var desktop = domain.Viewport{Width: 1280, Height: 800}
var mobile = domain.Viewport{Width: 375, Height: 667}

func TestGeometry_BottomAnchorNoPointer(t *testing.T) {
	p := New(DefaultConfig())
	target := domain.Rect{Top: 100, Left: 200, Width: 80, Height: 40}
	step := domain.StepDescriptor{ID: "calendar-cell", Target: ".cell", Position: domain.PositionBottom}

	geo := p.Geometry(&target, step, desktop)

	require.Equal(t, domain.Pixels, geo.Popover.Top.Unit)
	assert.Equal(t, 150.0, geo.Popover.Top.Value, "popover top should be target bottom + 10")
	assert.Equal(t, 240.0, geo.Popover.Left.Value, "popover left should be target horizontal midpoint")
	assert.Equal(t, "translateX(-50%)", geo.Popover.Transform)
	assert.Nil(t, geo.Pointer)
}

func TestGeometry_PointerClearanceReplacesEdgeMargin(t *testing.T) {
	p := New(DefaultConfig())
	target := domain.Rect{Top: 300, Left: 200, Width: 80, Height: 40}
	step := domain.StepDescriptor{ID: "add-shift", Target: "#add-shift", Position: domain.PositionBottom, ShowPointer: true}

	geo := p.Geometry(&target, step, desktop)

	assert.Equal(t, 340.0+60.0, geo.Popover.Top.Value, "pointer steps clear the pointer graphic")
	require.NotNil(t, geo.Pointer)
	assert.Equal(t, 340.0+16.0, geo.Pointer.Top)
	assert.Equal(t, 240.0-20.0, geo.Pointer.Left)
}

func TestGeometry_ClampKeepsPopoverOnScreen(t *testing.T) {
	cfg := DefaultConfig()
	p := New(cfg)
	target := domain.Rect{Top: 780, Left: 1250, Width: 40, Height: 40}
	step := domain.StepDescriptor{ID: "settings", Target: "#x", Position: domain.PositionBottom}

	geo := p.Geometry(&target, step, desktop)

	maxLeft := desktop.Width - cfg.ClampMargin - cfg.PopoverWidth.Desktop
	maxTop := desktop.Height - cfg.ClampMargin - cfg.PopoverHeight.Desktop
	assert.LessOrEqual(t, geo.Popover.Left.Value, maxLeft)
	assert.LessOrEqual(t, geo.Popover.Top.Value, maxTop)
	assert.GreaterOrEqual(t, geo.Popover.Left.Value, cfg.ClampMargin)
	assert.GreaterOrEqual(t, geo.Popover.Top.Value, cfg.ClampMargin)
}

func TestGeometry_NoTargetDegradesToCentered(t *testing.T) {
	p := New(DefaultConfig())
	step := domain.StepDescriptor{ID: "orphan", Target: "#gone", Position: domain.PositionRight}

	geo := p.Geometry(nil, step, desktop)

	assert.Nil(t, geo.Highlight)
	assert.Equal(t, domain.Percent, geo.Popover.Top.Unit)
	assert.Equal(t, 50.0, geo.Popover.Top.Value)
	assert.Equal(t, 50.0, geo.Popover.Left.Value)
	assert.Equal(t, "translate(-50%, -50%)", geo.Popover.Transform)
}

func TestGeometry_BespokeCenterOffset(t *testing.T) {
	p := New(DefaultConfig())
	step := domain.StepDescriptor{ID: "welcome", Target: "body", Position: domain.PositionCenter}

	geo := p.Geometry(nil, step, desktop)

	assert.Equal(t, 40.0, geo.Popover.Top.Value, "welcome renders slightly above vertical center")
}

func TestGeometry_CenterBottomClearsBottomNav(t *testing.T) {
	cfg := DefaultConfig()
	p := New(cfg)
	step := domain.StepDescriptor{ID: "finish", Target: "body", Position: domain.PositionCenterBottom}

	deskGeo := p.Geometry(nil, step, desktop)
	mobGeo := p.Geometry(nil, step, mobile)

	// Percent placements are untouched by clamping.
	assert.Equal(t, domain.Percent, deskGeo.Popover.Left.Unit)

	deskBottomGap := desktop.Height - (deskGeo.Popover.Top.Value + cfg.PopoverHeight.Desktop)
	mobBottomGap := mobile.Height - (mobGeo.Popover.Top.Value + cfg.PopoverHeight.Mobile)
	assert.Equal(t, cfg.CenterBottomOffset.Desktop, deskBottomGap)
	assert.Equal(t, cfg.CenterBottomOffset.Mobile, mobBottomGap)
	assert.Greater(t, mobBottomGap, deskBottomGap, "mobile keeps extra room for the bottom nav bar")
}

func TestGeometry_MobileCenteredOverrideWinsOverAnchor(t *testing.T) {
	p := New(DefaultConfig())
	target := domain.Rect{Top: 40, Left: 10, Width: 300, Height: 200}
	step := domain.StepDescriptor{ID: "employee-management", Target: "a", Position: domain.PositionRight, ShowPointer: true}

	geo := p.Geometry(&target, step, mobile)

	assert.Equal(t, domain.Percent, geo.Popover.Top.Unit, "known overflow steps render centered on mobile")
	assert.Nil(t, geo.Pointer, "forced-centered mobile steps suppress the pointer")

	deskGeo := p.Geometry(&target, step, desktop)
	assert.Equal(t, domain.Pixels, deskGeo.Popover.Left.Unit, "desktop keeps the anchored layout")
	assert.NotNil(t, deskGeo.Pointer)
}

func TestGeometry_LeftRightDegradeToCenteredOnMobile(t *testing.T) {
	p := New(DefaultConfig())
	target := domain.Rect{Top: 100, Left: 10, Width: 100, Height: 30}
	step := domain.StepDescriptor{ID: "settings", Target: "a", Position: domain.PositionLeft}

	geo := p.Geometry(&target, step, mobile)
	assert.Equal(t, domain.Percent, geo.Popover.Left.Unit)
}

func TestHighlightBox(t *testing.T) {
	cfg := DefaultConfig()
	p := New(cfg)

	t.Run("default padding and scroll conversion", func(t *testing.T) {
		target := domain.Rect{Top: 100, Left: 200, Width: 80, Height: 40}
		vp := domain.Viewport{Width: 1280, Height: 800, ScrollX: 15, ScrollY: 250}
		step := domain.StepDescriptor{ID: "calendar-cell", Target: ".cell", Position: domain.PositionBottom}

		geo := p.Geometry(&target, step, vp)
		require.NotNil(t, geo.Highlight)
		assert.Equal(t, 100.0-8+250, geo.Highlight.Top)
		assert.Equal(t, 200.0-8+15, geo.Highlight.Left)
		assert.Equal(t, 80.0+16, geo.Highlight.Width)
		assert.Equal(t, 40.0+16, geo.Highlight.Height)
	})

	t.Run("emphasis padding for designated steps", func(t *testing.T) {
		target := domain.Rect{Top: 100, Left: 200, Width: 80, Height: 40}
		step := domain.StepDescriptor{ID: "add-shift", Target: "#add-shift", Position: domain.PositionBottom}

		geo := p.Geometry(&target, step, desktop)
		require.NotNil(t, geo.Highlight)
		assert.Equal(t, 80.0+32, geo.Highlight.Width, "emphasized steps grow asymmetrically")
		assert.Equal(t, 40.0+24, geo.Highlight.Height)
	})

	t.Run("very tall targets are capped", func(t *testing.T) {
		target := domain.Rect{Top: 0, Left: 0, Width: 1280, Height: 3000}
		step := domain.StepDescriptor{ID: "calendar", Target: "main", Position: domain.PositionBottom}

		geo := p.Geometry(&target, step, desktop)
		require.NotNil(t, geo.Highlight)
		assert.Equal(t, 0.7*desktop.Height, geo.Highlight.Height)
	})
}

func TestGeometry_PointerFreeOnMobile(t *testing.T) {
	p := New(DefaultConfig())
	target := domain.Rect{Top: 100, Left: 50, Width: 200, Height: 100}
	step := domain.StepDescriptor{ID: "calendar", Target: "main", Position: domain.PositionBottom, ShowPointer: true}

	mobGeo := p.Geometry(&target, step, mobile)
	assert.Nil(t, mobGeo.Pointer)

	deskGeo := p.Geometry(&target, step, desktop)
	assert.NotNil(t, deskGeo.Pointer)
}
