package service

import (
	"fmt"

	"github.com/wb-go/wbf/ginext"

	"memorywall/internal/dto"
	"memorywall/internal/feed"
	"memorywall/internal/model"
	"memorywall/pkg/validator"
)

func (s *service) GetSettings(ctx *ginext.Context) {
	eventID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	settings, err := s.repo.GetSettingsByEventID(ctx.Request.Context(), eventID)
	if err != nil {
		s.respondEventErr(ctx, err, "failed to get event settings")
		return
	}

	dto.SuccessResponse(ctx, dto.NewSettingsResponse(*settings))
}

func contentPtr(v *string) *model.TabContent {
	if v == nil {
		return nil
	}
	c := model.TabContent(*v)
	return &c
}

func (s *service) UpdateSettings(ctx *ginext.Context) {
	eventID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	rctx := ctx.Request.Context()
	settings, err := s.repo.UpdateSettings(rctx, eventID, model.SettingsUpdate{
		CollectPhotos:        req.CollectPhotos,
		CollectMessages:      req.CollectMessages,
		CollectVoicemails:    req.CollectVoicemails,
		ModerationEnabled:    req.ModerationEnabled,
		ManualApproval:       req.ManualApproval,
		AutoApprovalDelay:    req.AutoApprovalDelay,
		ShowCeremonyTab:      req.ShowCeremonyTab,
		ShowAfterpartyTab:    req.ShowAfterpartyTab,
		ShowAlbumTab:         req.ShowAlbumTab,
		TabCeremonyName:      req.TabCeremonyName,
		TabAfterpartyName:    req.TabAfterpartyName,
		TabAlbumName:         req.TabAlbumName,
		TabCeremonyContent:   contentPtr(req.TabCeremonyContent),
		TabAfterpartyContent: contentPtr(req.TabAfterpartyContent),
		TabAlbumContent:      contentPtr(req.TabAlbumContent),
	})
	if err != nil {
		s.respondEventErr(ctx, err, "failed to update event settings")
		return
	}

	s.log.Info().Int64("event_id", eventID).Msg("event settings updated")

	// Tab layout may have changed; viewers rebuild their snapshot on event records.
	if event, err := s.repo.GetEventByID(rctx, eventID); err == nil {
		s.publish(rctx, feed.EventRecord(*event))
	}

	dto.SuccessResponse(ctx, dto.NewSettingsResponse(*settings))
}
