package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for store settlements.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeStale   = "stale"
)

var (
	// Registry holds the client-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitework",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total number of requests issued to the backend.",
		},
		[]string{"method", "route", "status"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sitework",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend requests.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		},
		[]string{"method", "route"},
	)

	storeSettlements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitework",
			Subsystem: "store",
			Name:      "settlements_total",
			Help:      "Total number of resource store settlements by outcome.",
		},
		[]string{"store", "outcome"},
	)

	storeInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "sitework",
			Subsystem: "store",
			Name:      "inflight_fetches",
			Help:      "Current number of in-flight fetches per resource store.",
		},
		[]string{"store"},
	)
)

func init() {
	Registry.MustRegister(backendRequests, backendDuration, storeSettlements, storeInFlight)
}

// RecordBackendRequest records one backend round trip. A zero status means no
// response was received.
func RecordBackendRequest(method, route string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	backendRequests.WithLabelValues(method, route, label).Inc()
	backendDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// FetchStarted marks a fetch as in flight for store.
func FetchStarted(store string) {
	storeInFlight.WithLabelValues(store).Inc()
}

// RecordSettlement records the settlement of a fetch for store.
func RecordSettlement(store, outcome string) {
	storeInFlight.WithLabelValues(store).Dec()
	storeSettlements.WithLabelValues(store, outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
