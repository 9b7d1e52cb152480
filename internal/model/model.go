package model

import "time"

type SubmissionType string

const (
	SubmissionPhoto   SubmissionType = "photo"
	SubmissionVideo   SubmissionType = "video"
	SubmissionMessage SubmissionType = "message"
	SubmissionVoice   SubmissionType = "voice"
)

// TabContent is the content filter of a tab: either "all" or a SubmissionType.
type TabContent string

const (
	ContentAll     TabContent = "all"
	ContentPhoto   TabContent = TabContent(SubmissionPhoto)
	ContentVideo   TabContent = TabContent(SubmissionVideo)
	ContentMessage TabContent = TabContent(SubmissionMessage)
	ContentVoice   TabContent = TabContent(SubmissionVoice)
)

type Event struct {
	ID             int64     `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Date           time.Time `db:"date" json:"date"`
	WelcomeMessage string    `db:"welcome_message" json:"welcome_message"`
	Slug           string    `db:"slug" json:"slug"`
	CoverPhotoURL  *string   `db:"cover_photo_url" json:"cover_photo_url,omitempty"`
	PrimaryColor   *string   `db:"primary_color" json:"primary_color,omitempty"`
	SecondaryColor *string   `db:"secondary_color" json:"secondary_color,omitempty"`
	AccentColor    *string   `db:"accent_color" json:"accent_color,omitempty"`
	PrimaryFont    *string   `db:"primary_font" json:"primary_font,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// EventUpdate is a partial update of an Event. Nil fields are left untouched.
// Slug is not part of it: a slug never changes once the event exists.
type EventUpdate struct {
	Title          *string
	Date           *time.Time
	WelcomeMessage *string
	CoverPhotoURL  *string
	PrimaryColor   *string
	SecondaryColor *string
	AccentColor    *string
	PrimaryFont    *string
}

type EventSettings struct {
	ID                int64 `db:"id" json:"id"`
	EventID           int64 `db:"event_id" json:"event_id"`
	CollectPhotos     bool  `db:"collect_photos" json:"collect_photos"`
	CollectMessages   bool  `db:"collect_messages" json:"collect_messages"`
	CollectVoicemails bool  `db:"collect_voicemails" json:"collect_voicemails"`
	ModerationEnabled bool  `db:"moderation_enabled" json:"moderation_enabled"`
	ManualApproval    *bool `db:"manual_approval" json:"manual_approval,omitempty"`
	AutoApprovalDelay *int  `db:"auto_approval_delay" json:"auto_approval_delay,omitempty"`

	ShowCeremonyTab   bool `db:"show_ceremony_tab" json:"show_ceremony_tab"`
	ShowAfterpartyTab bool `db:"show_afterparty_tab" json:"show_afterparty_tab"`
	ShowAlbumTab      bool `db:"show_album_tab" json:"show_album_tab"`

	TabCeremonyName   string `db:"tab_ceremony_name" json:"tab_ceremony_name"`
	TabAfterpartyName string `db:"tab_afterparty_name" json:"tab_afterparty_name"`
	TabAlbumName      string `db:"tab_album_name" json:"tab_album_name"`

	TabCeremonyContent   TabContent `db:"tab_ceremony_content" json:"tab_ceremony_content"`
	TabAfterpartyContent TabContent `db:"tab_afterparty_content" json:"tab_afterparty_content"`
	TabAlbumContent      TabContent `db:"tab_album_content" json:"tab_album_content"`
}

// SettingsUpdate is a partial update of EventSettings. Nil fields are left untouched.
type SettingsUpdate struct {
	CollectPhotos     *bool
	CollectMessages   *bool
	CollectVoicemails *bool
	ModerationEnabled *bool
	ManualApproval    *bool
	AutoApprovalDelay *int

	ShowCeremonyTab   *bool
	ShowAfterpartyTab *bool
	ShowAlbumTab      *bool

	TabCeremonyName   *string
	TabAfterpartyName *string
	TabAlbumName      *string

	TabCeremonyContent   *TabContent
	TabAfterpartyContent *TabContent
	TabAlbumContent      *TabContent
}

type Submission struct {
	ID            int64          `db:"id" json:"id"`
	EventID       int64          `db:"event_id" json:"event_id"`
	Type          SubmissionType `db:"type" json:"type"`
	ContentURL    *string        `db:"content_url" json:"content_url"`
	MessageText   *string        `db:"message_text" json:"message_text"`
	GuestName     *string        `db:"guest_name" json:"guest_name"`
	Approved      bool           `db:"approved" json:"approved"`
	AutoApproveAt *time.Time     `db:"auto_approve_at" json:"auto_approve_at,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}
