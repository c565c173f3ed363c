package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CodesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "legalbridge_reveal_codes_issued_total",
			Help: "Total number of contact reveal codes issued",
		},
	)

	CodeAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legalbridge_reveal_code_attempts_total",
			Help: "Total number of contact reveal code checks by result",
		},
		[]string{"result"},
	)

	CodeDeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legalbridge_reveal_code_delivery_failures_total",
			Help: "Total number of codes that could not be delivered",
		},
		[]string{"channel"},
	)

	ChatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legalbridge_chat_replies_total",
			Help: "Total number of chat replies by outcome",
		},
		[]string{"outcome"},
	)

	ChatGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "legalbridge_chat_generation_duration_seconds",
			Help: "Duration of generation calls in seconds",
		},
	)

	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legalbridge_documents_generated_total",
			Help: "Total number of documents generated by template kind",
		},
		[]string{"kind"},
	)

	ExpiredSessionsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "legalbridge_reveal_sessions_purged_total",
			Help: "Total number of expired reveal sessions removed",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "legalbridge_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
