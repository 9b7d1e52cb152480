package service

import (
	"io"
	"time"

	"github.com/wb-go/wbf/ginext"

	"memorywall/internal/dto"
	"memorywall/internal/feed"
)

const streamBuffer = 64

// Stream serves the live guest view of an event as server-sent events.
//
// The first frame is a "snapshot" of the public view. Newly approved
// submissions follow as "submission" frames. Any change to the event or its
// settings, and every reconcile tick, sends a fresh snapshot so a client that
// missed a frame converges on the database state.
func (s *service) Stream(ctx *ginext.Context) {
	rctx := ctx.Request.Context()

	event, err := s.repo.GetEventBySlug(rctx, ctx.Param("slug"))
	if err != nil {
		s.respondEventErr(ctx, err, "failed to get event by slug")
		return
	}

	view, err := s.publicView(rctx, *event)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", event.ID).Msg("failed to build public view")
		dto.InternalServerError(ctx)
		return
	}

	updates := make(chan feed.Record, streamBuffer)
	push := func(rec feed.Record) {
		select {
		case updates <- rec:
		default:
			// Slow client; the next snapshot covers what it missed.
		}
	}

	unsubscribeSubs := s.feed.Subscribe(feed.CollectionSubmissions, feed.ApprovedForEvent(event.ID), push)
	defer unsubscribeSubs()
	unsubscribeEvents := s.feed.Subscribe(feed.CollectionEvents, feed.ForEvent(event.ID), push)
	defer unsubscribeEvents()

	ticker := time.NewTicker(s.reconcile)
	defer ticker.Stop()

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("X-Accel-Buffering", "no")
	ctx.SSEvent("snapshot", view)
	ctx.Writer.Flush()

	current := *event
	snapshot := func() {
		view, err := s.publicView(rctx, current)
		if err != nil {
			s.log.Warn().Err(err).Int64("event_id", current.ID).Msg("stream snapshot failed")
			return
		}
		ctx.SSEvent("snapshot", view)
	}

	ctx.Stream(func(_ io.Writer) bool {
		select {
		case <-rctx.Done():
			return false
		case rec := <-updates:
			switch rec.Collection {
			case feed.CollectionSubmissions:
				ctx.SSEvent("submission", rec.Submission)
			case feed.CollectionEvents:
				if rec.Event != nil {
					current = *rec.Event
				}
				snapshot()
			}
			return true
		case <-ticker.C:
			snapshot()
			return true
		}
	})

	s.log.Debug().Int64("event_id", event.ID).Msg("stream closed")
}
