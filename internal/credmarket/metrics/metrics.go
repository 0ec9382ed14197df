// Package metrics holds the Prometheus collectors for the onboarding service.
// Everything is registered on Registry rather than the global default so tests
// and the CLI can run without exporting anything.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "credmarket"

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

var (
	// SignupsTotal counts completed signups by path (approved or waitlist).
	SignupsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Completed signups by company path.",
	}, []string{"path"})

	// OTPVerificationsTotal counts verify attempts by outcome.
	OTPVerificationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "OTP verification attempts by result.",
	}, []string{"result"})

	LoginsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	CompanyTransitionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "company_transitions_total",
		Help:      "Company status transitions by target status.",
	}, []string{"to"})

	// PropagatedApprovalsTotal counts users approved because their company was.
	PropagatedApprovalsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "propagated_approvals_total",
		Help:      "Users approved through company approval propagation.",
	})

	NotificationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notification deliveries by result (sent, failed, dropped).",
	}, []string{"result"})

	NotifyQueueDepth = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Messages waiting in the notification queue.",
	})

	// StaleRecords is refreshed by housekeeping.
	StaleRecords = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stale_records",
		Help:      "Records housekeeping considers stale, by kind.",
	}, []string{"kind"})

	HTTPRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "code"})
)

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
