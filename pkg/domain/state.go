package domain

// TourState is a read-only snapshot of the tour engine.
//
// StepIndex is only meaningful while Active is true. Progress is the derived
// percentage through the catalog. ViewedSteps is the persisted, deduplicated
// history of step ids ever shown, across sessions.
type TourState struct {
	Active           bool     `json:"active"`
	StepIndex        int      `json:"step_index"`
	Progress         int      `json:"progress"`
	CompletedActions []string `json:"completed_actions,omitempty"`
	ViewedSteps      []string `json:"viewed_steps,omitempty"`
	HasSeenTutorial  bool     `json:"has_seen_tutorial"`
}

// EndReason values reported on tour end events.
const (
	EndReasonCompleted = "completed"
	EndReasonSkipped   = "skipped"
)
