package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_backend_requests_total",
			Help: "Calls made to the shop backend API",
		},
		[]string{"method", "route", "status"},
	)

	backendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_backend_request_duration_ms",
			Help:    "Duration of shop backend API calls in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3200},
		},
		[]string{"method", "route"},
	)
)

func observe(method, route, status string, d time.Duration) {
	backendRequests.WithLabelValues(method, route, status).Inc()
	backendDuration.WithLabelValues(method, route).Observe(float64(d.Milliseconds()))
}
