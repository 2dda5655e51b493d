// internal/common/metrics/metrics.go

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Endpoint and job worker metrics share the task_type label.
var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of endpoint calls or jobs completed",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of endpoint calls or jobs failed",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of endpoint or job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of in-flight endpoint calls or jobs",
		},
		[]string{"task_type"},
	)
)

// HTTP layer.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "funnel_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Funnel domain.
var (
	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_wizard_transitions_total",
			Help: "Wizard navigation attempts by variant, direction and outcome",
		},
		[]string{"variant", "direction", "outcome"},
	)

	ArrivalOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_arrivals_total",
			Help: "Arrival registrations by variant and outcome",
		},
		[]string{"variant", "outcome"},
	)

	LeadSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_lead_submissions_total",
			Help: "Lead submissions by variant and outcome",
		},
		[]string{"variant", "outcome"},
	)

	SessionStoreFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_session_store_failures_total",
			Help: "Session cache operations that failed",
		},
		[]string{"op"},
	)

	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_geocode_lookups_total",
			Help: "ZIP lookups by match precision and cache result",
		},
		[]string{"precision", "cache"},
	)
)
