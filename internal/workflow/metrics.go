package workflow

import (
	"github.com/bookaroo/create-event-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var workflowOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "event_creation_workflow_outcomes_total",
		Help: "Terminal outcomes of event-creation workflow runs",
	},
	[]string{"outcome"},
)

func recordOutcome(outcome domain.Outcome) {
	workflowOutcomes.WithLabelValues(string(outcome)).Inc()
}
