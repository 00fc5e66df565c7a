package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// State machine metrics
	StatusTransitions   *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec

	// Eventing metrics
	EventsPublished prometheus.Counter
	EventsFailed    prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Total number of applied status transitions",
		}, []string{"entity", "from", "to"}),
		TransitionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "Total number of rejected status transitions",
		}, []string{"entity"}),
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of entity change events published",
		}),
		EventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of entity change events that failed to publish",
		}),
	}
}
