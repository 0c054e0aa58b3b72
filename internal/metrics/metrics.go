// Package metrics exposes Prometheus counters for the event-processing path.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsTotal counts inbound events by kind (text, callback).
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifebot_events_total",
		Help: "Inbound events processed, by kind.",
	}, []string{"kind"})

	// WorkflowsStarted counts session starts by workflow id.
	WorkflowsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifebot_workflows_started_total",
		Help: "Conversation workflows started, by workflow.",
	}, []string{"workflow"})

	// WorkflowsCompleted counts terminal commits by workflow id.
	WorkflowsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifebot_workflows_completed_total",
		Help: "Conversation workflows committed, by workflow.",
	}, []string{"workflow"})

	// ValidationRejects counts step inputs that failed their validator.
	// These are user errors, not system failures.
	ValidationRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifebot_validation_rejects_total",
		Help: "Step inputs rejected by a validator, by workflow.",
	}, []string{"workflow"})

	// StoreErrors counts record-store failures surfaced to users.
	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifebot_store_errors_total",
		Help: "Record store failures during commits or reads.",
	})

	// ActiveSessions tracks the number of users currently mid-workflow.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lifebot_active_sessions",
		Help: "Users currently in a multi-step conversation.",
	})
)

// Handler returns the scrape endpoint for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
