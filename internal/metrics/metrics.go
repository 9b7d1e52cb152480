package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceManual = "manual"
	SourceAuto   = "auto"
	SourceSweep  = "sweep"
)

// Metrics provides observability for submissions, approvals and the feed.
type Metrics struct {
	SubmissionsCreated *prometheus.CounterVec
	Approvals          *prometheus.CounterVec

	// Auto-approval attempts that found nothing to approve (deleted,
	// already approved or taken over by the organizer).
	AutoApprovalNoops    prometheus.Counter
	AutoApprovalFailures *prometheus.CounterVec
	ScheduleFailures     prometheus.Counter

	FeedDeliveries *prometheus.CounterVec

	HTTPDuration *prometheus.HistogramVec
}

// New registers all metrics on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SubmissionsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "memorywall_submissions_created_total",
			Help: "Total guest submissions created by type",
		}, []string{"type"}),

		Approvals: f.NewCounterVec(prometheus.CounterOpts{
			Name: "memorywall_approvals_total",
			Help: "Total submissions approved by source",
		}, []string{"source"}), // source: "manual", "auto", "sweep"

		AutoApprovalNoops: f.NewCounter(prometheus.CounterOpts{
			Name: "memorywall_auto_approval_noops_total",
			Help: "Auto-approval attempts against submissions that were no longer pending",
		}),

		AutoApprovalFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "memorywall_auto_approval_failures_total",
			Help: "Auto-approval attempts that failed and were dropped",
		}, []string{"source"}),

		ScheduleFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "memorywall_auto_approval_schedule_failures_total",
			Help: "Delayed approval messages that could not be published",
		}),

		FeedDeliveries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "memorywall_feed_deliveries_total",
			Help: "Records delivered to feed subscribers by collection",
		}, []string{"collection"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memorywall_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncSubmissionCreated(subType string) {
	if m != nil {
		m.SubmissionsCreated.WithLabelValues(subType).Inc()
	}
}

func (m *Metrics) IncApproval(source string) {
	if m != nil {
		m.Approvals.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) IncAutoApprovalNoop() {
	if m != nil {
		m.AutoApprovalNoops.Inc()
	}
}

func (m *Metrics) IncAutoApprovalFailure(source string) {
	if m != nil {
		m.AutoApprovalFailures.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) IncScheduleFailure() {
	if m != nil {
		m.ScheduleFailures.Inc()
	}
}

func (m *Metrics) IncFeedDelivery(collection string) {
	if m != nil {
		m.FeedDeliveries.WithLabelValues(collection).Inc()
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m != nil {
		m.HTTPDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
	}
}
