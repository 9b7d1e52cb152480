package approval

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"memorywall/internal/dto"
	"memorywall/internal/feed"
	"memorywall/internal/metrics"
	"memorywall/internal/model"
	"memorywall/internal/repo/mocks"
)

type published struct {
	body  []byte
	delay time.Duration
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, body []byte, delay time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, published{body: body, delay: delay})
	return nil
}

type ApprovalSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockRepository
	hub      *feed.Hub
	metrics  *metrics.Metrics
	approver *Approver
	received []feed.Record
}

func TestApprovalSuite(t *testing.T) {
	suite.Run(t, new(ApprovalSuite))
}

func (s *ApprovalSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockRepository(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.hub = feed.NewHub(s.metrics)
	s.received = nil
	s.hub.Subscribe(feed.CollectionSubmissions, nil, func(rec feed.Record) {
		s.received = append(s.received, rec)
	})
	log := zerolog.Nop()
	s.approver = NewApprover(s.store, s.hub, &log, s.metrics)
}

func (s *ApprovalSuite) TearDownTest() {
	s.ctrl.Finish()
}

// =============================================================================
// Scheduler
// =============================================================================

func (s *ApprovalSuite) TestScheduleAutoApproval_KeyedBySubmission() {
	pub := &fakePublisher{}
	log := zerolog.Nop()
	scheduler := NewScheduler(pub, &log, s.metrics)

	t0 := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	photo := model.Submission{ID: 1, EventID: 9, Type: model.SubmissionPhoto, CreatedAt: t0}
	message := model.Submission{ID: 2, EventID: 9, Type: model.SubmissionMessage, CreatedAt: t0.Add(time.Second)}

	s.Require().NoError(scheduler.ScheduleAutoApproval(context.Background(), photo, 5*time.Second))
	s.Require().NoError(scheduler.ScheduleAutoApproval(context.Background(), message, 5*time.Second))
	s.Require().Len(pub.msgs, 2)

	var first, second dto.AutoApprovalMessage
	s.Require().NoError(json.Unmarshal(pub.msgs[0].body, &first))
	s.Require().NoError(json.Unmarshal(pub.msgs[1].body, &second))

	s.Equal(int64(1), first.SubmissionID)
	s.Equal(t0.Add(5*time.Second), first.ApproveAt)
	s.Equal(5*time.Second, pub.msgs[0].delay)

	s.Equal(int64(2), second.SubmissionID)
	s.Equal(t0.Add(6*time.Second), second.ApproveAt)
	s.Equal(5*time.Second, pub.msgs[1].delay)
}

func (s *ApprovalSuite) TestScheduleAutoApproval_PrefersStoredDeadline() {
	pub := &fakePublisher{}
	log := zerolog.Nop()
	scheduler := NewScheduler(pub, &log, s.metrics)

	t0 := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	deadline := t0.Add(7 * time.Second)
	sub := model.Submission{ID: 3, CreatedAt: t0, AutoApproveAt: &deadline}

	s.Require().NoError(scheduler.ScheduleAutoApproval(context.Background(), sub, -time.Second))

	var msg dto.AutoApprovalMessage
	s.Require().NoError(json.Unmarshal(pub.msgs[0].body, &msg))
	s.Equal(deadline, msg.ApproveAt)
	s.Equal(time.Duration(0), pub.msgs[0].delay)
}

func (s *ApprovalSuite) TestScheduleAutoApproval_PublishFailure() {
	pub := &fakePublisher{err: errors.New("channel closed")}
	log := zerolog.Nop()
	scheduler := NewScheduler(pub, &log, s.metrics)

	err := scheduler.ScheduleAutoApproval(context.Background(), model.Submission{ID: 4}, time.Second)
	s.Error(err)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ScheduleFailures))
}

// =============================================================================
// Approver
// =============================================================================

func (s *ApprovalSuite) TestApprove_PendingSubmission() {
	approved := &model.Submission{ID: 1, EventID: 9, Type: model.SubmissionPhoto, Approved: true}
	s.store.EXPECT().ApproveIfPending(gomock.Any(), int64(1)).Return(approved, nil)

	ok, err := s.approver.Approve(context.Background(), 1)
	s.NoError(err)
	s.True(ok)

	s.Require().Len(s.received, 1)
	s.Equal(int64(1), s.received[0].Submission.ID)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Approvals.WithLabelValues(metrics.SourceAuto)))
}

func (s *ApprovalSuite) TestApprove_DeletedSubmissionIsNoop() {
	s.store.EXPECT().ApproveIfPending(gomock.Any(), int64(2)).Return(nil, nil)

	ok, err := s.approver.Approve(context.Background(), 2)
	s.NoError(err)
	s.False(ok)
	s.Empty(s.received)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AutoApprovalNoops))
}

func (s *ApprovalSuite) TestApprove_StoreErrorIsReturnedOnce() {
	s.store.EXPECT().ApproveIfPending(gomock.Any(), int64(3)).Return(nil, errors.New("connection reset")).Times(1)

	ok, err := s.approver.Approve(context.Background(), 3)
	s.Error(err)
	s.False(ok)
	s.Empty(s.received)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AutoApprovalFailures.WithLabelValues(metrics.SourceAuto)))
}

// =============================================================================
// Sweeper
// =============================================================================

func (s *ApprovalSuite) TestSweepOnce_DrainsInBatches() {
	log := zerolog.Nop()
	sweeper := NewSweeper(s.approver, time.Minute, 2, &log)

	gomock.InOrder(
		s.store.EXPECT().ApproveOverdue(gomock.Any(), 2).Return([]model.Submission{
			{ID: 1, EventID: 9, Approved: true},
			{ID: 2, EventID: 9, Approved: true},
		}, nil),
		s.store.EXPECT().ApproveOverdue(gomock.Any(), 2).Return([]model.Submission{
			{ID: 3, EventID: 9, Approved: true},
		}, nil),
	)

	n, err := sweeper.SweepOnce(context.Background())
	s.NoError(err)
	s.Equal(3, n)
	s.Len(s.received, 3)
	s.Equal(3.0, testutil.ToFloat64(s.metrics.Approvals.WithLabelValues(metrics.SourceSweep)))
}

func (s *ApprovalSuite) TestSweepOnce_Error() {
	log := zerolog.Nop()
	sweeper := NewSweeper(s.approver, 0, 0, &log)
	s.Equal(DefaultSweepInterval, sweeper.interval)
	s.Equal(DefaultSweepBatch, sweeper.batch)

	s.store.EXPECT().ApproveOverdue(gomock.Any(), DefaultSweepBatch).Return(nil, errors.New("db down"))

	n, err := sweeper.SweepOnce(context.Background())
	s.Error(err)
	s.Zero(n)
}

func (s *ApprovalSuite) TestRun_StopsOnCancel() {
	log := zerolog.Nop()
	sweeper := NewSweeper(s.approver, time.Hour, 10, &log)

	ctx, cancel := context.WithCancel(context.Background())
	s.store.EXPECT().ApproveOverdue(gomock.Any(), 10).DoAndReturn(func(context.Context, int) ([]model.Submission, error) {
		cancel()
		return nil, nil
	})

	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(2 * time.Second):
		s.Fail("sweeper did not stop")
	}
}
