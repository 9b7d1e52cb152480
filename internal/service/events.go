package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/ginext"

	"memorywall/internal/dto"
	"memorywall/internal/feed"
	"memorywall/internal/model"
	"memorywall/internal/moderation"
	"memorywall/internal/repo"
	"memorywall/pkg/validator"
)

func (s *service) CreateEvent(ctx *ginext.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse create event request")
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		s.log.Error().Msgf("validation failed: %v", verr)
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	date, _ := time.Parse(dto.DateLayout, req.Date)
	event := &model.Event{
		Title:          req.Title,
		Date:           date,
		WelcomeMessage: req.WelcomeMessage,
		Slug:           req.Slug,
		CoverPhotoURL:  req.CoverPhotoURL,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		AccentColor:    req.AccentColor,
		PrimaryFont:    req.PrimaryFont,
	}
	settings := moderation.DefaultSettings()

	if err := s.repo.CreateEventTx(ctx.Request.Context(), event, &settings); err != nil {
		if errors.Is(err, repo.ErrSlugTaken) {
			dto.SlugTakenError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to create event in DB")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", event.ID).Str("slug", event.Slug).Msg("event created successfully")

	dto.SuccessCreatedResponse(ctx, dto.AdminEventResponse{
		Event:    dto.NewEventResponse(*event),
		Settings: dto.NewSettingsResponse(settings),
	})
}

func (s *service) ListEvents(ctx *ginext.Context) {
	events, err := s.repo.GetAllEvents(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.NewEventResponse(e))
	}

	dto.SuccessResponse(ctx, resp)
}

func (s *service) GetEvent(ctx *ginext.Context) {
	eventID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()

	event, err := s.repo.GetEventByID(rctx, eventID)
	if err != nil {
		s.respondEventErr(ctx, err, "failed to get event")
		return
	}

	settings, err := s.repo.GetSettingsByEventID(rctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to get event settings")
		dto.InternalServerError(ctx)
		return
	}

	subs, err := s.repo.GetSubmissionsByEventID(rctx, eventID, nil)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to get submissions")
		dto.InternalServerError(ctx)
		return
	}

	resp := dto.AdminEventResponse{
		Event:    dto.NewEventResponse(*event),
		Settings: dto.NewSettingsResponse(*settings),
	}
	for _, sub := range subs {
		if sub.Approved {
			resp.Approved++
		} else {
			resp.Pending++
		}
	}

	dto.SuccessResponse(ctx, resp)
}

func (s *service) UpdateEvent(ctx *ginext.Context) {
	eventID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	upd := model.EventUpdate{
		Title:          req.Title,
		WelcomeMessage: req.WelcomeMessage,
		CoverPhotoURL:  req.CoverPhotoURL,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		AccentColor:    req.AccentColor,
		PrimaryFont:    req.PrimaryFont,
	}
	if req.Date != nil {
		date, _ := time.Parse(dto.DateLayout, *req.Date)
		upd.Date = &date
	}

	event, err := s.repo.UpdateEvent(ctx.Request.Context(), eventID, upd)
	if err != nil {
		s.respondEventErr(ctx, err, "failed to update event")
		return
	}

	s.log.Info().Int64("event_id", eventID).Msg("event updated")
	s.publish(ctx.Request.Context(), feed.EventRecord(*event))

	dto.SuccessResponse(ctx, dto.NewEventResponse(*event))
}

func (s *service) DeleteEvent(ctx *ginext.Context) {
	eventID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := s.repo.DeleteEventTx(ctx.Request.Context(), eventID); err != nil {
		s.respondEventErr(ctx, err, "failed to delete event")
		return
	}

	s.log.Info().Int64("event_id", eventID).Msg("event deleted with its settings and submissions")
	dto.SuccessResponse(ctx, map[string]int64{"deleted": eventID})
}

func (s *service) GetPublicEvent(ctx *ginext.Context) {
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

	dto.SuccessResponse(ctx, view)
}

func (s *service) respondEventErr(ctx *ginext.Context, err error, msg string) {
	if errors.Is(err, repo.ErrEventNotFound) || errors.Is(err, repo.ErrSettingsNotFound) {
		dto.EventNotFoundError(ctx)
		return
	}
	s.log.Error().Err(err).Msg(msg)
	dto.InternalServerError(ctx)
}
