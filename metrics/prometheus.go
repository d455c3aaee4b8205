package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	syncActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_actions_total",
			Help: "Total number of sync actions executed.",
		},
		[]string{"action", "result"},
	)
	syncActionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_action_duration_seconds",
			Help:    "Histogram of sync action durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"action"},
	)
	gatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of marketplace API gateway calls.",
		},
		[]string{"operation", "result"},
	)
)

func init() {
	prometheus.MustRegister(syncActionsTotal)
	prometheus.MustRegister(syncActionDuration)
	prometheus.MustRegister(gatewayRequestsTotal)
}

// RecordAction records the outcome and duration of one orchestrator action.
func RecordAction(action string, success bool, duration time.Duration) {
	syncActionsTotal.WithLabelValues(action, classifyResult(success)).Inc()
	syncActionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordGatewayCall records one remote API call outcome.
func RecordGatewayCall(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	gatewayRequestsTotal.WithLabelValues(operation, result).Inc()
}

func classifyResult(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
