package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"memorywall/internal/dto"
	"memorywall/internal/feed"
	"memorywall/internal/metrics"
	"memorywall/internal/model"
	"memorywall/internal/repo"
)

const (
	DefaultReconcileInterval = 30 * time.Second
	DefaultScheduleTimeout   = 5 * time.Second
)

type Service interface {
	// Organizer
	CreateEvent(ctx *ginext.Context)
	ListEvents(ctx *ginext.Context)
	GetEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)
	DeleteEvent(ctx *ginext.Context)
	GetSettings(ctx *ginext.Context)
	UpdateSettings(ctx *ginext.Context)
	ListSubmissions(ctx *ginext.Context)
	SetApproval(ctx *ginext.Context)
	DeleteSubmission(ctx *ginext.Context)

	// Guest
	GetPublicEvent(ctx *ginext.Context)
	CreateSubmission(ctx *ginext.Context)
	Stream(ctx *ginext.Context)
}

type AutoApprovalScheduler interface {
	ScheduleAutoApproval(ctx context.Context, sub model.Submission, delay time.Duration) error
}

type Config struct {
	Repo      repo.Repository
	Log       *zerolog.Logger
	Scheduler AutoApprovalScheduler
	Publisher feed.Publisher
	Feed      feed.Subscriber
	Metrics   *metrics.Metrics

	// ReconcileInterval is how often stream viewers get a full snapshot.
	ReconcileInterval time.Duration
	// ScheduleTimeout bounds a single auto-approval publish.
	ScheduleTimeout time.Duration
}

type service struct {
	repo      repo.Repository
	log       *zerolog.Logger
	scheduler AutoApprovalScheduler
	publisher feed.Publisher
	feed      feed.Subscriber
	metrics   *metrics.Metrics
	reconcile time.Duration
	schedule  time.Duration
}

func NewService(cfg Config) Service {
	reconcile := cfg.ReconcileInterval
	if reconcile <= 0 {
		reconcile = DefaultReconcileInterval
	}
	schedule := cfg.ScheduleTimeout
	if schedule <= 0 {
		schedule = DefaultScheduleTimeout
	}
	return &service{
		repo:      cfg.Repo,
		log:       cfg.Log,
		scheduler: cfg.Scheduler,
		publisher: cfg.Publisher,
		feed:      cfg.Feed,
		metrics:   cfg.Metrics,
		reconcile: reconcile,
		schedule:  schedule,
	}
}

func parseID(ctx *ginext.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		dto.FieldBadFormatError(ctx, name)
		return 0, false
	}
	return id, true
}

func (s *service) publish(ctx context.Context, rec feed.Record) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("collection", rec.Collection).Int64("event_id", rec.EventID).
			Msg("failed to publish feed record")
	}
}

// publicView builds the guest view of an event from its current settings
// and approved submissions.
func (s *service) publicView(ctx context.Context, event model.Event) (dto.PublicEventResponse, error) {
	settings, err := s.repo.GetSettingsByEventID(ctx, event.ID)
	if err != nil {
		return dto.PublicEventResponse{}, err
	}

	approved := true
	subs, err := s.repo.GetSubmissionsByEventID(ctx, event.ID, &approved)
	if err != nil {
		return dto.PublicEventResponse{}, err
	}

	return dto.NewPublicEventResponse(event, *settings, subs), nil
}
