package approval

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultSweepInterval = 10 * time.Second
	DefaultSweepBatch    = 100
)

// Sweeper periodically approves pending submissions whose auto-approval
// deadline has passed. It covers messages lost by the broker and restarts
// that happened while a delay was running.
type Sweeper struct {
	approver *Approver
	interval time.Duration
	batch    int
	log      *zerolog.Logger
}

func NewSweeper(approver *Approver, interval time.Duration, batch int, log *zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if batch <= 0 {
		batch = DefaultSweepBatch
	}
	return &Sweeper{approver: approver, interval: interval, batch: batch, log: log}
}

func (s *Sweeper) Run(ctx context.Context) error {
	s.log.Info().Dur("interval", s.interval).Msg("auto-approval sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if n, err := s.SweepOnce(ctx); err != nil {
			s.log.Error().Err(err).Msg("auto-approval sweep failed")
		} else if n > 0 {
			s.log.Info().Int("approved", n).Msg("auto-approval sweep completed")
		}

		select {
		case <-ctx.Done():
			s.log.Info().Msg("auto-approval sweeper stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// SweepOnce drains all currently overdue submissions in batches.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, nil
		}
		subs, err := s.approver.ApproveOverdue(ctx, s.batch)
		if err != nil {
			return total, err
		}
		total += len(subs)
		if len(subs) < s.batch {
			return total, nil
		}
	}
}
