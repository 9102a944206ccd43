package service

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assisted_service_api_requests_total",
		Help: "Total requests issued to the assisted service, by operation and HTTP status code.",
	}, []string{"operation", "code"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assisted_service_api_request_duration_seconds",
		Help:    "Latency of assisted service API requests, by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// observeRequest records one API call. A status code of 0 means the request
// never produced an HTTP response (transport failure).
func observeRequest(operation string, statusCode int, start time.Time) {
	apiRequestsTotal.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()
	apiRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
