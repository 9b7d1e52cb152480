package approval

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"memorywall/internal/feed"
	"memorywall/internal/metrics"
	"memorywall/internal/model"
)

type Store interface {
	ApproveIfPending(ctx context.Context, id int64) (*model.Submission, error)
	ApproveOverdue(ctx context.Context, limit int) ([]model.Submission, error)
}

// Approver applies automatic approvals and announces them on the feed.
type Approver struct {
	store   Store
	feed    feed.Publisher
	log     *zerolog.Logger
	metrics *metrics.Metrics
}

func NewApprover(store Store, publisher feed.Publisher, log *zerolog.Logger, m *metrics.Metrics) *Approver {
	return &Approver{store: store, feed: publisher, log: log, metrics: m}
}

// Approve makes a single conditional attempt to approve the submission. A
// submission that is gone or no longer pending is a silent no-op. Errors are
// returned for logging only; callers never retry.
func (a *Approver) Approve(ctx context.Context, submissionID int64) (bool, error) {
	sub, err := a.store.ApproveIfPending(ctx, submissionID)
	if err != nil {
		a.metrics.IncAutoApprovalFailure(metrics.SourceAuto)
		return false, fmt.Errorf("auto-approve submission %d: %w", submissionID, err)
	}
	if sub == nil {
		a.metrics.IncAutoApprovalNoop()
		a.log.Debug().
			Int64("submission_id", submissionID).
			Msg("submission no longer pending, skipping auto-approval")
		return false, nil
	}

	a.metrics.IncApproval(metrics.SourceAuto)
	a.log.Info().
		Int64("submission_id", sub.ID).
		Int64("event_id", sub.EventID).
		Msg("submission auto-approved")
	a.announce(ctx, *sub)
	return true, nil
}

// ApproveOverdue approves up to limit submissions whose deadline passed
// without their queue message being processed.
func (a *Approver) ApproveOverdue(ctx context.Context, limit int) ([]model.Submission, error) {
	subs, err := a.store.ApproveOverdue(ctx, limit)
	if err != nil {
		a.metrics.IncAutoApprovalFailure(metrics.SourceSweep)
		return nil, err
	}

	for _, sub := range subs {
		a.metrics.IncApproval(metrics.SourceSweep)
		a.log.Info().
			Int64("submission_id", sub.ID).
			Int64("event_id", sub.EventID).
			Msg("overdue submission approved by sweep")
		a.announce(ctx, sub)
	}
	return subs, nil
}

func (a *Approver) announce(ctx context.Context, sub model.Submission) {
	if a.feed == nil {
		return
	}
	if err := a.feed.Publish(ctx, feed.SubmissionRecord(sub)); err != nil {
		a.log.Warn().Err(err).Int64("submission_id", sub.ID).Msg("failed to publish approved submission")
	}
}
