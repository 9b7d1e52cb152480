package consumerWorker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wb-go/wbf/zlog"

	"memorywall/internal/approval"
	"memorywall/internal/dto"
)

type Consumer interface {
	Consume(handler func([]byte) error) error
	// StopConsuming ends the subscription and returns once the delivery in
	// progress has been handled.
	StopConsuming() error
}

// Reader feeds delayed auto-approval messages into the approver.
type Reader struct {
	RMQ      Consumer
	approver *approval.Approver
	done     chan struct{}
	cancel   context.CancelFunc
}

func NewReader(rmq Consumer, approver *approval.Approver) *Reader {
	return &Reader{
		RMQ:      rmq,
		approver: approver,
		done:     make(chan struct{}),
	}
}

func (r *Reader) handle(ctx context.Context, body []byte) error {
	var msg dto.AutoApprovalMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		zlog.Logger.Error().
			Err(err).
			Msgf("Failed to unmarshal message: %s", string(body))
		return fmt.Errorf("unmarshal auto-approval message: %w", err)
	}

	zlog.Logger.Info().
		Int64("submission_id", msg.SubmissionID).
		Int64("event_id", msg.EventID).
		Dur("late_by", lateness(msg.ApproveAt, time.Now())).
		Msg("Received auto-approval message")

	if _, err := r.approver.Approve(ctx, msg.SubmissionID); err != nil {
		zlog.Logger.Error().
			Err(err).
			Int64("submission_id", msg.SubmissionID).
			Msg("Auto-approval failed, submission stays pending")
		return err
	}
	return nil
}

// lateness is how far past its scheduled time a message arrived.
func lateness(approveAt, now time.Time) time.Duration {
	if approveAt.IsZero() || now.Before(approveAt) {
		return 0
	}
	return now.Sub(approveAt)
}

// Start consumes until ctx is done or Stop is called. Handlers run on a
// context that outlives the stop signal, so deliveries already taken from the
// queue are still applied while the subscription winds down.
func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("Auto-approval reader started")

	go func() {
		defer close(r.done)

		hctx, hcancel := context.WithCancel(context.WithoutCancel(ctx))
		defer hcancel()

		handler := func(body []byte) error {
			return r.handle(hctx, body)
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		if err := r.RMQ.StopConsuming(); err != nil {
			zlog.Logger.Warn().Err(err).Msg("Failed to cancel consumer")
		}
		zlog.Logger.Info().Msg("Auto-approval reader stopped")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
