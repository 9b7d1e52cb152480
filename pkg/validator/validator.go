package validator

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator"

	"memorywall/internal/model"
	"memorywall/internal/moderation"
)

var (
	global    *validator.Validate
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

const (
	ErrInvalidFormat      = "Invalid format"
	ErrFieldRequired      = "Field is required"
	ErrFieldExceedsMaxLen = "Field exceeds maximum length"
	ErrFieldBelowMinLen   = "Field is below minimum length"
	ErrFieldExceedsMaxVal = "Field exceeds maximum value"
	ErrFieldBelowMinVal   = "Field is below minimum value"
	ErrUnknownValidation  = "Unknown validation error"

	DateLayout = "2006-01-02"
)

// Fonts available for event pages.
var Fonts = map[string]struct{}{
	"Playfair Display": {},
	"Georgia":          {},
	"Baskerville":      {},
	"Times New Roman":  {},
	"Arial":            {},
	"Helvetica":        {},
	"Verdana":          {},
	"Trebuchet MS":     {},
	"Palatino":         {},
	"Garamond":         {},
	"Caslon":           {},
	"Amanda Black":     {},
}

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", validateSlug)
	_ = v.RegisterValidation("eventdate", validateEventDate)
	_ = v.RegisterValidation("font", validateFont)
	_ = v.RegisterValidation("tabcontent", validateTabContent)
	_ = v.RegisterValidation("subtype", validateSubmissionType)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

func validateEventDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

func validateFont(fl validator.FieldLevel) bool {
	_, ok := Fonts[fl.Field().String()]
	return ok
}

func validateTabContent(fl validator.FieldLevel) bool {
	return moderation.ValidTabContent(model.TabContent(fl.Field().String()))
}

func validateSubmissionType(fl validator.FieldLevel) bool {
	switch model.SubmissionType(fl.Field().String()) {
	case model.SubmissionPhoto, model.SubmissionVideo, model.SubmissionMessage, model.SubmissionVoice:
		return true
	}
	return false
}

func Validate(ctx context.Context, structure any) error {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrors) == 0 {
		return nil
	}
	ve := vErrors[0]
	var msg string
	switch ve.Tag() {
	case "slug", "hexcolor", "url":
		msg = ErrInvalidFormat
	case "required":
		msg = ErrFieldRequired
	case "max":
		msg = ErrFieldExceedsMaxLen
	case "min":
		msg = ErrFieldBelowMinLen
	case "lt", "lte":
		msg = ErrFieldExceedsMaxVal
	case "gt", "gte":
		msg = ErrFieldBelowMinVal
	case "eventdate":
		msg = "Date must be formatted as YYYY-MM-DD"
	case "font":
		msg = "Unknown font"
	case "tabcontent":
		msg = "Tab content must be one of all, photo, video, message, voice"
	case "subtype":
		msg = "Type must be one of photo, video, message, voice"
	default:
		msg = ErrUnknownValidation
	}
	return errors.New(msg + ": " + ve.Namespace())
}
