package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	gatewayForwards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendit",
			Name:      "gateway_forwards_total",
			Help:      "Requests forwarded by the gateway, by outcome.",
		},
		[]string{"outcome"},
	)

	bookingsByStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendit",
			Name:      "bookings_total",
			Help:      "Booking lifecycle events by resulting status.",
		},
		[]string{"status"},
	)

	syncFailedTasks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lendit",
			Name:      "sync_failed_tasks",
			Help:      "Sheets sync tasks that exhausted their retries.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, gatewayForwards, bookingsByStatus, syncFailedTasks)
	})
}

// IncHTTP increments the counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncForward increments the gateway forward counter for an outcome label.
func IncForward(outcome string) {
	gatewayForwards.WithLabelValues(outcome).Inc()
}

// IncBooking increments the booking counter for a status label.
func IncBooking(status string) {
	bookingsByStatus.WithLabelValues(status).Inc()
}

// SetSyncFailed records the current failed sync task backlog.
func SetSyncFailed(n int) {
	syncFailedTasks.Set(float64(n))
}
