package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/wb-go/wbf/ginext"

	"memorywall/internal/dto"
	"memorywall/internal/feed"
	"memorywall/internal/metrics"
	"memorywall/internal/model"
	"memorywall/internal/moderation"
	"memorywall/internal/repo"
	"memorywall/pkg/validator"
)

func (s *service) CreateSubmission(ctx *ginext.Context) {
	rctx := ctx.Request.Context()

	event, err := s.repo.GetEventBySlug(rctx, ctx.Param("slug"))
	if err != nil {
		s.respondEventErr(ctx, err, "failed to get event by slug")
		return
	}

	var req dto.CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse submission request")
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	settings, err := s.repo.GetSettingsByEventID(rctx, event.ID)
	if err != nil {
		s.respondEventErr(ctx, err, "failed to get event settings")
		return
	}

	sub, err := moderation.PrepareSubmission(*settings, model.Submission{
		Type:        model.SubmissionType(req.Type),
		ContentURL:  req.ContentURL,
		MessageText: req.MessageText,
		GuestName:   req.GuestName,
	})
	if err != nil {
		var cv *moderation.ConstraintViolation
		switch {
		case errors.As(err, &cv):
			dto.BadResponseError(ctx, dto.ConstraintFailed, cv.Error())
		case errors.Is(err, moderation.ErrCollectionDisabled):
			dto.ErrorResponse(ctx, http.StatusForbidden, dto.CollectionDisabled,
				"This event is not collecting "+req.Type+" submissions")
		default:
			s.log.Error().Err(err).Msg("failed to prepare submission")
			dto.InternalServerError(ctx)
		}
		return
	}

	plan := moderation.DecideApprovalPolicy(*settings)
	var autoApproveAfter *time.Duration
	if plan.ScheduleRequired() {
		autoApproveAfter = &plan.Delay
	}

	if err := s.repo.CreateSubmission(rctx, &sub, autoApproveAfter); err != nil {
		s.log.Error().Err(err).Int64("event_id", event.ID).Msg("failed to create submission in DB")
		dto.InternalServerError(ctx)
		return
	}

	s.metrics.IncSubmissionCreated(string(sub.Type))
	s.log.Info().Int64("submission_id", sub.ID).Int64("event_id", event.ID).
		Str("type", string(sub.Type)).Str("plan", plan.Kind.String()).Msg("submission stored")

	if plan.ScheduleRequired() {
		go s.scheduleAutoApproval(context.WithoutCancel(rctx), sub, plan.Delay)
	}

	dto.SuccessCreatedResponse(ctx, sub)
}

// scheduleAutoApproval runs off the request path. A publish that fails or
// times out leaves the row to the sweeper once auto_approve_at has passed.
func (s *service) scheduleAutoApproval(ctx context.Context, sub model.Submission, delay time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, s.schedule)
	defer cancel()

	if err := s.scheduler.ScheduleAutoApproval(ctx, sub, delay); err != nil {
		s.log.Warn().Err(err).Int64("submission_id", sub.ID).Msg("auto-approval not scheduled, sweeper will handle it")
	}
}

func (s *service) ListSubmissions(ctx *ginext.Context) {
	eventID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var approved *bool
	if raw := ctx.Query("approved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			dto.FieldBadFormatError(ctx, "approved")
			return
		}
		approved = &v
	}

	rctx := ctx.Request.Context()
	if _, err := s.repo.GetEventByID(rctx, eventID); err != nil {
		s.respondEventErr(ctx, err, "failed to get event")
		return
	}

	subs, err := s.repo.GetSubmissionsByEventID(rctx, eventID, approved)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to list submissions")
		dto.InternalServerError(ctx)
		return
	}
	if subs == nil {
		subs = []model.Submission{}
	}

	dto.SuccessResponse(ctx, subs)
}

func (s *service) SetApproval(ctx *ginext.Context) {
	subID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	rctx := ctx.Request.Context()
	current, err := s.repo.GetSubmissionByID(rctx, subID)
	if err != nil {
		s.respondSubmissionErr(ctx, err, "failed to get submission")
		return
	}

	_, changed, err := moderation.Transition(moderation.StateOf(current), moderation.ToggleAction(*req.Approved))
	if err != nil {
		dto.SubmissionNotFoundError(ctx)
		return
	}

	// Always written: an organizer decision also cancels any pending
	// automatic approval, even when the flag itself does not change.
	updated, err := s.repo.SetSubmissionApproval(rctx, subID, *req.Approved)
	if err != nil {
		s.respondSubmissionErr(ctx, err, "failed to set submission approval")
		return
	}

	s.log.Info().Int64("submission_id", subID).Bool("approved", updated.Approved).
		Bool("changed", changed).Msg("submission approval set by organizer")

	if changed && updated.Approved {
		s.metrics.IncApproval(metrics.SourceManual)
		s.publish(rctx, feed.SubmissionRecord(*updated))
	}

	dto.SuccessResponse(ctx, updated)
}

func (s *service) DeleteSubmission(ctx *ginext.Context) {
	subID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	rctx := ctx.Request.Context()
	current, err := s.repo.GetSubmissionByID(rctx, subID)
	if err != nil {
		s.respondSubmissionErr(ctx, err, "failed to get submission")
		return
	}
	if _, _, err := moderation.Transition(moderation.StateOf(current), moderation.ActionDelete); err != nil {
		dto.SubmissionNotFoundError(ctx)
		return
	}

	if err := s.repo.DeleteSubmission(rctx, subID); err != nil {
		s.respondSubmissionErr(ctx, err, "failed to delete submission")
		return
	}

	s.log.Info().Int64("submission_id", subID).Msg("submission deleted")
	dto.SuccessResponse(ctx, map[string]int64{"deleted": subID})
}

func (s *service) respondSubmissionErr(ctx *ginext.Context, err error, msg string) {
	if errors.Is(err, repo.ErrSubmissionNotFound) {
		dto.SubmissionNotFoundError(ctx)
		return
	}
	s.log.Error().Err(err).Msg(msg)
	dto.InternalServerError(ctx)
}
