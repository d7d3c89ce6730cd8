package observability

import (
	"context"
	"log/slog"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that emit one structured log line
// per event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourStart: func(ctx context.Context, e *domain.TourEvent) {
			logger.Info("tour_start", "step_id", e.StepID)
		},
		OnTourEnd: func(ctx context.Context, e *domain.TourEvent) {
			logger.Info("tour_end", "reason", e.Reason, "progress", e.Progress)
		},
		OnStepEnter: func(ctx context.Context, e *domain.TourEvent) {
			logger.Info("step_enter",
				"step_id", e.StepID,
				"step_index", e.StepIndex,
				"progress", e.Progress,
			)
		},
		OnStepLeave: func(ctx context.Context, e *domain.TourEvent) {
			logger.Info("step_leave", "step_id", e.StepID)
		},
		OnActionComplete: func(ctx context.Context, e *domain.TourEvent) {
			logger.Info("action_complete", "step_id", e.StepID)
		},
	}
}
