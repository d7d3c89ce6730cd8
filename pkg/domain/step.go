package domain

// Position constants define the placement hint of a step's popover relative
// to its resolved target.
const (
	// PositionTop anchors the popover above the target.
	PositionTop = "top"
	// PositionBottom anchors the popover below the target.
	PositionBottom = "bottom"
	// PositionLeft anchors the popover to the left of the target.
	PositionLeft = "left"
	// PositionRight anchors the popover to the right of the target.
	PositionRight = "right"
	// PositionCenter renders the popover centered in the viewport, ignoring the target.
	PositionCenter = "center"
	// PositionCenterBottom renders the popover horizontally centered at a fixed
	// distance from the viewport bottom.
	PositionCenterBottom = "center-bottom"
)

// Fallback kind constants tag the resolution strategy variants.
const (
	// FallbackSelector retries with an alternative CSS selector.
	FallbackSelector = "selector"
	// FallbackText matches elements by case-insensitive substring of their text.
	FallbackText = "text"
	// FallbackShape matches vector icons by the prefix of their path data.
	FallbackShape = "shape"
)

// DeviceClass distinguishes the two layout families the host app renders.
type DeviceClass string

const (
	DeviceDesktop DeviceClass = "desktop"
	DeviceMobile  DeviceClass = "mobile"
)

// Fallback describes one alternative strategy for locating a step's target.
// Kind selects the variant; the remaining fields are variant-specific.
// Device restricts the strategy to one device class (empty means both).
type Fallback struct {
	Kind     string      `json:"kind" yaml:"kind" mapstructure:"kind"`
	Selector string      `json:"selector,omitempty" yaml:"selector,omitempty" mapstructure:"selector"`
	Scope    string      `json:"scope,omitempty" yaml:"scope,omitempty" mapstructure:"scope"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty" mapstructure:"text"`
	Shape    string      `json:"shape,omitempty" yaml:"shape,omitempty" mapstructure:"shape"`
	Device   DeviceClass `json:"device,omitempty" yaml:"device,omitempty" mapstructure:"device"`
}

// StepDescriptor is one immutable stop in the tour.
//
// Target is a CSS-selector-like string identifying the DOM anchor; "body"
// marks a non-anchored step. Route names the navigation destination that
// satisfies the step's required action (only meaningful when RequireAction
// is set). ClickThrough marks the target as an element that must keep
// receiving real clicks while highlighted.
type StepDescriptor struct {
	ID               string     `json:"id" yaml:"id" mapstructure:"id"`
	Target           string     `json:"target" yaml:"target" mapstructure:"target"`
	Title            string     `json:"title" yaml:"title" mapstructure:"title"`
	Content          string     `json:"content" yaml:"content" mapstructure:"content"`
	Position         string     `json:"position" yaml:"position" mapstructure:"position"`
	ShowPointer      bool       `json:"show_pointer,omitempty" yaml:"show_pointer,omitempty" mapstructure:"show_pointer"`
	RequireAction    bool       `json:"require_action,omitempty" yaml:"require_action,omitempty" mapstructure:"require_action"`
	KeyboardShortcut string     `json:"keyboard_shortcut,omitempty" yaml:"keyboard_shortcut,omitempty" mapstructure:"keyboard_shortcut"`
	Route            string     `json:"route,omitempty" yaml:"route,omitempty" mapstructure:"route"`
	ClickThrough     bool       `json:"click_through,omitempty" yaml:"click_through,omitempty" mapstructure:"click_through"`
	Fallbacks        []Fallback `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty" mapstructure:"fallbacks"`
}

// Anchored reports whether the step points at a concrete element rather
// than the document body.
func (s StepDescriptor) Anchored() bool {
	return s.Target != "" && s.Target != "body"
}
