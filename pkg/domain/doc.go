/*
Package domain contains the core domain models for the ShiftSync tour engine.

It defines the fundamental entities of the guided tour, such as Step
Descriptors, the Tour State, and Overlay Geometry. This package is kept pure
and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - StepDescriptor: Represents one stop of the tour (target, copy, placement hint).
  - Catalog: The ordered, immutable list of step descriptors.
  - TourState: Captures the runtime snapshot of a tour (active flag, step index, progress).
  - OverlayGeometry: The computed highlight/pointer/popover placement for a step.
*/
package domain
