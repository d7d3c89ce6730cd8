package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/josephwaugh312/shiftsync-tour/pkg/domain"
)

// Metrics exposes the tour's lifecycle as Prometheus collectors.
type Metrics struct {
	tourStarts  prometheus.Counter
	tourEnds    *prometheus.CounterVec
	stepViews   *prometheus.CounterVec
	actionsDone *prometheus.CounterVec
	progress    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with the given
// registerer (pass prometheus.DefaultRegisterer for the global registry).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tourStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tour_starts_total",
			Help: "Total number of tour activations",
		}),
		tourEnds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tour_ends_total",
			Help: "Total number of tour deactivations, by reason",
		}, []string{"reason"}),
		stepViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tour_step_views_total",
			Help: "Total number of step entries, by step id",
		}, []string{"step_id"}),
		actionsDone: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tour_action_completions_total",
			Help: "Total number of required-action completions, by step id",
		}, []string{"step_id"}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tour_progress_percent",
			Help: "Progress of the most recent tour session",
		}),
	}
	reg.MustRegister(m.tourStarts, m.tourEnds, m.stepViews, m.actionsDone, m.progress)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors. Combine
// them with logging hooks via Chain.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourStart: func(ctx context.Context, e *domain.TourEvent) {
			m.tourStarts.Inc()
			m.progress.Set(float64(e.Progress))
		},
		OnTourEnd: func(ctx context.Context, e *domain.TourEvent) {
			m.tourEnds.WithLabelValues(e.Reason).Inc()
			m.progress.Set(float64(e.Progress))
		},
		OnStepEnter: func(ctx context.Context, e *domain.TourEvent) {
			m.stepViews.WithLabelValues(e.StepID).Inc()
			m.progress.Set(float64(e.Progress))
		},
		OnActionComplete: func(ctx context.Context, e *domain.TourEvent) {
			m.actionsDone.WithLabelValues(e.StepID).Inc()
		},
	}
}

// Chain merges hook sets so one engine can feed metrics, logs, and any
// custom sink at once. Hooks run in the given order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	type selector func(domain.LifecycleHooks) func(context.Context, *domain.TourEvent)

	fan := func(pick selector) func(context.Context, *domain.TourEvent) {
		var fns []func(context.Context, *domain.TourEvent)
		for _, h := range hooks {
			if fn := pick(h); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.TourEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}

	return domain.LifecycleHooks{
		OnTourStart:      fan(func(h domain.LifecycleHooks) func(context.Context, *domain.TourEvent) { return h.OnTourStart }),
		OnTourEnd:        fan(func(h domain.LifecycleHooks) func(context.Context, *domain.TourEvent) { return h.OnTourEnd }),
		OnStepEnter:      fan(func(h domain.LifecycleHooks) func(context.Context, *domain.TourEvent) { return h.OnStepEnter }),
		OnStepLeave:      fan(func(h domain.LifecycleHooks) func(context.Context, *domain.TourEvent) { return h.OnStepLeave }),
		OnActionComplete: fan(func(h domain.LifecycleHooks) func(context.Context, *domain.TourEvent) { return h.OnActionComplete }),
	}
}
