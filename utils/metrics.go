package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WarrantyRegistrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warranty_registrations_total",
		Help: "Warranties registered.",
	})

	ClaimsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warranty_claims_created_total",
		Help: "Claims filed.",
	})

	ClaimStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warranty_claim_status_changes_total",
		Help: "Claim status updates by target status.",
	}, []string{"status"})

	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warranty_notification_failures_total",
		Help: "Customer or admin notifications that could not be delivered.",
	}, []string{"kind"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "warranty_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)
