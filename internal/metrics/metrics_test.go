package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncSubmissionCreated("photo")
	m.IncSubmissionCreated("photo")
	m.IncApproval(SourceAuto)
	m.IncAutoApprovalNoop()
	m.IncAutoApprovalFailure(SourceSweep)
	m.IncScheduleFailure()
	m.IncFeedDelivery("submissions")
	m.ObserveHTTP("GET", "/v1/e/:slug", "200", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SubmissionsCreated.WithLabelValues("photo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Approvals.WithLabelValues(SourceAuto)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Approvals.WithLabelValues(SourceManual)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AutoApprovalNoops))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AutoApprovalFailures.WithLabelValues(SourceSweep)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScheduleFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedDeliveries.WithLabelValues("submissions")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncSubmissionCreated("voice")
		m.IncApproval(SourceManual)
		m.IncAutoApprovalNoop()
		m.IncAutoApprovalFailure(SourceAuto)
		m.IncScheduleFailure()
		m.IncFeedDelivery("events")
		m.ObserveHTTP("GET", "/", "200", time.Second)
	})
}
