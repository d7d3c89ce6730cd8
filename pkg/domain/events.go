package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTourStart      EventType = "tour_start"
	EventTourEnd        EventType = "tour_end"
	EventStepEnter      EventType = "step_enter"
	EventStepLeave      EventType = "step_leave"
	EventActionComplete EventType = "action_complete"
)

// TourEvent describes one lifecycle occurrence in the tour engine.
type TourEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	StepID    string    `json:"step_id,omitempty"`
	StepIndex int       `json:"step_index"`
	Progress  int       `json:"progress"`
	// Reason is set on tour_end events: "completed" or "skipped".
	Reason string `json:"reason,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously after the owning transition commits; they must not
// call back into the engine.
type LifecycleHooks struct {
	OnTourStart      func(context.Context, *TourEvent)
	OnTourEnd        func(context.Context, *TourEvent)
	OnStepEnter      func(context.Context, *TourEvent)
	OnStepLeave      func(context.Context, *TourEvent)
	OnActionComplete func(context.Context, *TourEvent)
}
