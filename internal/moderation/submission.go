package moderation

import (
	"errors"
	"fmt"
	"strings"

	"memorywall/internal/model"
)

var ErrCollectionDisabled = errors.New("event does not collect this submission type")

// ConstraintViolation reports a submission whose payload does not match its
// declared type.
type ConstraintViolation struct {
	Field  string
	Reason string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation on %s: %s", e.Field, e.Reason)
}

func violation(field, reason string) error {
	return &ConstraintViolation{Field: field, Reason: reason}
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// ValidateSubmission checks that exactly the payload field matching the
// submission type is populated.
func ValidateSubmission(sub model.Submission) error {
	switch sub.Type {
	case model.SubmissionPhoto, model.SubmissionVideo, model.SubmissionVoice:
		if !present(sub.ContentURL) {
			return violation("content_url", fmt.Sprintf("required for %s", sub.Type))
		}
		if present(sub.MessageText) {
			return violation("message_text", fmt.Sprintf("not allowed for %s", sub.Type))
		}
	case model.SubmissionMessage:
		if !present(sub.MessageText) {
			return violation("message_text", "required for message")
		}
		if present(sub.ContentURL) {
			return violation("content_url", "not allowed for message")
		}
	default:
		return violation("type", fmt.Sprintf("unknown submission type %q", sub.Type))
	}
	return nil
}

// Collects reports whether the event accepts submissions of type t.
func Collects(settings model.EventSettings, t model.SubmissionType) bool {
	switch t {
	case model.SubmissionPhoto, model.SubmissionVideo:
		return settings.CollectPhotos
	case model.SubmissionMessage:
		return settings.CollectMessages
	case model.SubmissionVoice:
		return settings.CollectVoicemails
	}
	return false
}

// PrepareSubmission validates sub against the event settings and normalises
// it for insertion: trimmed text, NULL for blank guest names, and always
// unapproved.
func PrepareSubmission(settings model.EventSettings, sub model.Submission) (model.Submission, error) {
	if err := ValidateSubmission(sub); err != nil {
		return sub, err
	}
	if !Collects(settings, sub.Type) {
		return sub, fmt.Errorf("%w: %s", ErrCollectionDisabled, sub.Type)
	}

	sub.EventID = settings.EventID
	sub.Approved = false
	sub.AutoApproveAt = nil
	if sub.Type == model.SubmissionMessage {
		text := strings.TrimSpace(*sub.MessageText)
		sub.MessageText = &text
		sub.ContentURL = nil
	} else {
		url := strings.TrimSpace(*sub.ContentURL)
		sub.ContentURL = &url
		sub.MessageText = nil
	}
	if sub.GuestName != nil {
		name := strings.TrimSpace(*sub.GuestName)
		if name == "" {
			sub.GuestName = nil
		} else {
			sub.GuestName = &name
		}
	}
	return sub, nil
}
