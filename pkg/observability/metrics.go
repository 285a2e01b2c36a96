package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inkforge/inkforge/pkg/domain"
)

// Metrics holds the collectors for gamebook play and compilation.
type Metrics struct {
	SceneVisits   *prometheus.CounterVec
	ChoicesTaken  *prometheus.CounterVec
	ParseFailures prometheus.Counter
	ParseDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SceneVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkforge_scene_visits_total",
				Help: "Total number of scene visits",
			},
			[]string{"scene_id"},
		),
		ChoicesTaken: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkforge_choices_taken_total",
				Help: "Total number of choices taken, by origin scene",
			},
			[]string{"scene_id"},
		),
		ParseFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inkforge_parse_failures_total",
				Help: "Total number of documents that failed to compile",
			},
		),
		ParseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "inkforge_parse_duration_seconds",
				Help: "Time spent compiling gamebook documents",
			},
		),
	}
	reg.MustRegister(m.SceneVisits, m.ChoicesTaken, m.ParseFailures, m.ParseDuration)
	return m
}

// Hooks returns lifecycle hooks feeding the play counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(ctx context.Context, e *domain.SceneEvent) {
			m.SceneVisits.WithLabelValues(e.SceneID).Inc()
		},
		OnChoice: func(ctx context.Context, e *domain.ChoiceEvent) {
			m.ChoicesTaken.WithLabelValues(e.SceneID).Inc()
		},
	}
}
