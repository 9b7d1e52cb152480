package dto

import (
	"net/http"
	"time"

	"github.com/wb-go/wbf/ginext"

	"memorywall/internal/model"
	"memorywall/internal/moderation"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."
	Unauthorized       = "UNAUTHORIZED"

	EventNotFound      = "EVENT_NOT_FOUND"
	SubmissionNotFound = "SUBMISSION_NOT_FOUND"
	SlugTaken          = "SLUG_TAKEN"
	ConstraintFailed   = "CONSTRAINT_VIOLATION"
	CollectionDisabled = "COLLECTION_DISABLED"
)

const (
	DefaultFont           = "Playfair Display"
	DefaultPrimaryColor   = "#a67c52"
	DefaultSecondaryColor = "#ede1d1"
	DefaultAccentColor    = "#704a3a"
	DateLayout            = "2006-01-02"
)

type CreateEventRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Date           string  `json:"date" validate:"required,eventdate"`
	WelcomeMessage string  `json:"welcome_message" validate:"required,max=2000"`
	Slug           string  `json:"slug" validate:"required,max=100,slug"`
	CoverPhotoURL  *string `json:"cover_photo_url" validate:"omitempty,url"`
	PrimaryColor   *string `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor *string `json:"secondary_color" validate:"omitempty,hexcolor"`
	AccentColor    *string `json:"accent_color" validate:"omitempty,hexcolor"`
	PrimaryFont    *string `json:"primary_font" validate:"omitempty,font"`
}

type UpdateEventRequest struct {
	Title          *string `json:"title" validate:"omitempty,max=200"`
	Date           *string `json:"date" validate:"omitempty,eventdate"`
	WelcomeMessage *string `json:"welcome_message" validate:"omitempty,max=2000"`
	CoverPhotoURL  *string `json:"cover_photo_url" validate:"omitempty,url"`
	PrimaryColor   *string `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor *string `json:"secondary_color" validate:"omitempty,hexcolor"`
	AccentColor    *string `json:"accent_color" validate:"omitempty,hexcolor"`
	PrimaryFont    *string `json:"primary_font" validate:"omitempty,font"`
}

type UpdateSettingsRequest struct {
	CollectPhotos     *bool `json:"collect_photos"`
	CollectMessages   *bool `json:"collect_messages"`
	CollectVoicemails *bool `json:"collect_voicemails"`
	ModerationEnabled *bool `json:"moderation_enabled"`
	ManualApproval    *bool `json:"manual_approval"`
	AutoApprovalDelay *int  `json:"auto_approval_delay" validate:"omitempty,gte=0,lte=3600"`

	ShowCeremonyTab   *bool `json:"show_ceremony_tab"`
	ShowAfterpartyTab *bool `json:"show_afterparty_tab"`
	ShowAlbumTab      *bool `json:"show_album_tab"`

	TabCeremonyName   *string `json:"tab_ceremony_name" validate:"omitempty,max=50"`
	TabAfterpartyName *string `json:"tab_afterparty_name" validate:"omitempty,max=50"`
	TabAlbumName      *string `json:"tab_album_name" validate:"omitempty,max=50"`

	TabCeremonyContent   *string `json:"tab_ceremony_content" validate:"omitempty,tabcontent"`
	TabAfterpartyContent *string `json:"tab_afterparty_content" validate:"omitempty,tabcontent"`
	TabAlbumContent      *string `json:"tab_album_content" validate:"omitempty,tabcontent"`
}

type CreateSubmissionRequest struct {
	Type        string  `json:"type" validate:"required,subtype"`
	ContentURL  *string `json:"content_url" validate:"omitempty,url,max=2048"`
	MessageText *string `json:"message_text" validate:"omitempty,max=5000"`
	GuestName   *string `json:"guest_name" validate:"omitempty,max=100"`
}

type ApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// AutoApprovalMessage is the delayed queue payload for one submission.
type AutoApprovalMessage struct {
	SubmissionID int64     `json:"submission_id"`
	EventID      int64     `json:"event_id"`
	ApproveAt    time.Time `json:"approve_at"`
}

type EventResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Date           string    `json:"date"`
	WelcomeMessage string    `json:"welcome_message"`
	Slug           string    `json:"slug"`
	CoverPhotoURL  *string   `json:"cover_photo_url,omitempty"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	AccentColor    string    `json:"accent_color"`
	PrimaryFont    string    `json:"primary_font"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SettingsResponse struct {
	model.EventSettings
	ApprovalMode          string `json:"approval_mode"`
	EffectiveDelaySeconds int    `json:"effective_auto_approval_delay"`
}

type TabResponse struct {
	Key         moderation.TabKey  `json:"key"`
	Name        string             `json:"name"`
	Content     model.TabContent   `json:"content"`
	Submissions []model.Submission `json:"submissions"`
}

type PublicEventResponse struct {
	Event  EventResponse `json:"event"`
	Tabs   []TabResponse `json:"tabs"`
	NoTabs bool          `json:"no_tabs"`
}

type AdminEventResponse struct {
	Event    EventResponse    `json:"event"`
	Settings SettingsResponse `json:"settings"`
	Pending  int              `json:"pending"`
	Approved int              `json:"approved"`
}

func orDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func NewEventResponse(e model.Event) EventResponse {
	return EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Date:           e.Date.Format(DateLayout),
		WelcomeMessage: e.WelcomeMessage,
		Slug:           e.Slug,
		CoverPhotoURL:  e.CoverPhotoURL,
		PrimaryColor:   orDefault(e.PrimaryColor, DefaultPrimaryColor),
		SecondaryColor: orDefault(e.SecondaryColor, DefaultSecondaryColor),
		AccentColor:    orDefault(e.AccentColor, DefaultAccentColor),
		PrimaryFont:    orDefault(e.PrimaryFont, DefaultFont),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func NewSettingsResponse(s model.EventSettings) SettingsResponse {
	plan := moderation.DecideApprovalPolicy(s)
	return SettingsResponse{
		EventSettings:         s,
		ApprovalMode:          plan.Kind.String(),
		EffectiveDelaySeconds: int(plan.Delay / time.Second),
	}
}

// NewPublicEventResponse renders the guest view of an event from approved
// submissions, one entry per visible tab in display order.
func NewPublicEventResponse(e model.Event, s model.EventSettings, approved []model.Submission) PublicEventResponse {
	view := moderation.ResolveTabView(s, approved)
	enabled := moderation.EnabledTabs(s)

	tabs := make([]TabResponse, 0, len(enabled))
	for _, t := range enabled {
		subs := view[t.Key]
		if subs == nil {
			subs = []model.Submission{}
		}
		tabs = append(tabs, TabResponse{Key: t.Key, Name: t.Name, Content: t.Content, Submissions: subs})
	}

	return PublicEventResponse{
		Event:  NewEventResponse(e),
		Tabs:   tabs,
		NoTabs: len(tabs) == 0,
	}
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func ErrorResponse(c *ginext.Context, status int, code, desc string) {
	c.AbortWithStatusJSON(status, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func BadResponseError(c *ginext.Context, code, desc string) {
	ErrorResponse(c, http.StatusBadRequest, code, desc)
}

func InternalServerError(c *ginext.Context) {
	ErrorResponse(c, http.StatusInternalServerError, ServiceUnavailable, InternalError)
}

func UnauthorizedError(c *ginext.Context) {
	ErrorResponse(c, http.StatusUnauthorized, Unauthorized, "Missing or invalid admin token")
}

func FieldBadFormatError(c *ginext.Context, fieldName string) {
	BadResponseError(c, FieldBadFormat, "Field '"+fieldName+"' has bad format")
}

func EventNotFoundError(c *ginext.Context) {
	ErrorResponse(c, http.StatusNotFound, EventNotFound, "Event not found")
}

func SubmissionNotFoundError(c *ginext.Context) {
	ErrorResponse(c, http.StatusNotFound, SubmissionNotFound, "Submission not found")
}

func SlugTakenError(c *ginext.Context) {
	ErrorResponse(c, http.StatusConflict, SlugTaken, "This event URL is already taken")
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Status: "ok",
		Data:   data,
	})
}
