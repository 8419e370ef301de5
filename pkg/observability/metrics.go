package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway dispatch metrics
	gatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagseguro_gateway_requests_total",
		Help: "Total number of requests dispatched to the gateway",
	}, []string{
		"operation", // checkout, payment, notification, session
		"result",    // HTTP status code, or "error" when the dispatch failed outright
	})

	gatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "pagseguro_gateway_request_duration_seconds",
		Help: "Time spent waiting on the gateway per dispatch",
		// The gateway timeout is 60s; bucket up to it
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{
		"operation",
	})

	unsafeResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagseguro_unsafe_responses_total",
		Help: "Responses rejected by the safe XML parser",
	}, []string{
		"reason", // doctype, not_xml, malformed
	})
)

// RecordGatewayRequest records the outcome and duration of one gateway dispatch
func RecordGatewayRequest(operation, result string, duration time.Duration) {
	gatewayRequestsTotal.WithLabelValues(operation, result).Inc()
	gatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordUnsafeResponse records a response body the parser refused to process
func RecordUnsafeResponse(reason string) {
	unsafeResponsesTotal.WithLabelValues(reason).Inc()
}
