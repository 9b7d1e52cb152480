package approval

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"memorywall/internal/dto"
	"memorywall/internal/metrics"
	"memorywall/internal/model"
)

type DelayedPublisher interface {
	Publish(ctx context.Context, message []byte, delay time.Duration) error
}

// Scheduler turns a DelayedAuto plan into a delayed queue message keyed by
// submission id. Each submission gets its own message, so submissions of the
// same event never wait on each other.
type Scheduler struct {
	pub     DelayedPublisher
	log     *zerolog.Logger
	metrics *metrics.Metrics
}

func NewScheduler(pub DelayedPublisher, log *zerolog.Logger, m *metrics.Metrics) *Scheduler {
	return &Scheduler{pub: pub, log: log, metrics: m}
}

func (s *Scheduler) ScheduleAutoApproval(ctx context.Context, sub model.Submission, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}

	approveAt := sub.CreatedAt.Add(delay)
	if sub.AutoApproveAt != nil {
		approveAt = *sub.AutoApproveAt
	}

	payload, err := json.Marshal(dto.AutoApprovalMessage{
		SubmissionID: sub.ID,
		EventID:      sub.EventID,
		ApproveAt:    approveAt,
	})
	if err != nil {
		return fmt.Errorf("marshal auto-approval message: %w", err)
	}

	if err := s.pub.Publish(ctx, payload, delay); err != nil {
		s.metrics.IncScheduleFailure()
		return fmt.Errorf("publish auto-approval message: %w", err)
	}

	s.log.Debug().
		Int64("submission_id", sub.ID).
		Dur("delay", delay).
		Msg("auto-approval scheduled")
	return nil
}
