package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewCounter registers the service counters on reg. Label values:
// app_requests_total, user_registered_total, user_duplicate_total,
// validation_failed_total, event_dropped_total.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cadastro",
			Name:      "general_counters",
		},
		[]string{"result"})
}
