package dsl

import "github.com/josephwaugh312/shiftsync-tour/pkg/domain"

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step    domain.StepDescriptor
	builder *Builder
}

// Title sets the step's popover title.
func (s *StepBuilder) Title(title string) *StepBuilder {
	s.step.Title = title
	return s
}

// Content sets the step's popover body text.
func (s *StepBuilder) Content(content string) *StepBuilder {
	s.step.Content = content
	return s
}

// Anchor ties the step to a DOM element by CSS selector.
func (s *StepBuilder) Anchor(selector string) *StepBuilder {
	s.step.Target = selector
	return s
}

// Center detaches the step from any element and centers its popover.
func (s *StepBuilder) Center() *StepBuilder {
	s.step.Target = "body"
	s.step.Position = domain.PositionCenter
	return s
}

// Position sets the placement hint relative to the anchor.
func (s *StepBuilder) Position(position string) *StepBuilder {
	s.step.Position = position
	return s
}

// Pointer enables the animated pointer on the anchor.
func (s *StepBuilder) Pointer() *StepBuilder {
	s.step.ShowPointer = true
	return s
}

// RequireNavigation gates advancement on the user navigating to route.
func (s *StepBuilder) RequireNavigation(route string) *StepBuilder {
	s.step.RequireAction = true
	s.step.Route = route
	return s
}

// ClickThrough keeps the anchor clickable while the overlay is up.
func (s *StepBuilder) ClickThrough() *StepBuilder {
	s.step.ClickThrough = true
	return s
}

// Shortcut names the keyboard shortcut surfaced in the popover.
func (s *StepBuilder) Shortcut(keys string) *StepBuilder {
	s.step.KeyboardShortcut = keys
	return s
}

// FallbackSelector adds an alternative CSS selector resolution strategy.
func (s *StepBuilder) FallbackSelector(selector string, device domain.DeviceClass) *StepBuilder {
	s.step.Fallbacks = append(s.step.Fallbacks, domain.Fallback{
		Kind:     domain.FallbackSelector,
		Selector: selector,
		Device:   device,
	})
	return s
}

// FallbackText adds a text-match resolution strategy scoped to a container.
func (s *StepBuilder) FallbackText(text, scope string) *StepBuilder {
	s.step.Fallbacks = append(s.step.Fallbacks, domain.Fallback{
		Kind:  domain.FallbackText,
		Text:  text,
		Scope: scope,
	})
	return s
}

// FallbackShape adds an icon path-data resolution strategy.
func (s *StepBuilder) FallbackShape(shape, scope string) *StepBuilder {
	s.step.Fallbacks = append(s.step.Fallbacks, domain.Fallback{
		Kind:  domain.FallbackShape,
		Shape: shape,
		Scope: scope,
	})
	return s
}

// Descriptor returns the underlying step.
// This is primarily used by the Builder, but exposed for advanced usage.
func (s *StepBuilder) Descriptor() domain.StepDescriptor {
	return s.step
}
