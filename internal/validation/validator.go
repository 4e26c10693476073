package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/slide-cms-api/internal/models"
)

var hhmmRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// FieldError describes a single rejected field in a write payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator validates admin write payloads at the API boundary. Malformed
// time strings are rejected here, never stored; stored day-set values
// fail open at read time instead.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom hhmm and weekdays rules registered
func New() *Validator {
	v := validator.New()

	v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmRegex.MatchString(fl.Field().String())
	})

	v.RegisterValidation("weekdays", func(fl validator.FieldLevel) bool {
		return validWeekdaysSpec(fl.Field().String())
	})

	v.RegisterValidation("challenge_duration", func(fl validator.FieldLevel) bool {
		return models.ValidChallengeDurations[int(fl.Field().Int())]
	})

	return &Validator{validate: v}
}

// ValidateArticleInput checks an article write payload
func (v *Validator) ValidateArticleInput(in *models.ArticleInput) []FieldError {
	return v.check(in)
}

// ValidateMediaInput checks a media write payload
func (v *Validator) ValidateMediaInput(in *models.MediaInput) []FieldError {
	return v.check(in)
}

// ValidateMediaFolderInput checks a media folder write payload
func (v *Validator) ValidateMediaFolderInput(in *models.MediaFolderInput) []FieldError {
	return v.check(in)
}

// ValidateReorderRequest checks a reorder payload
func (v *Validator) ValidateReorderRequest(req *models.ReorderRequest) []FieldError {
	return v.check(req)
}

func (v *Validator) check(payload interface{}) []FieldError {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors []FieldError
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: message(fe),
			})
		}
		return fieldErrors
	}
	return []FieldError{{Field: "", Message: err.Error()}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hhmm":
		return "must be a 24-hour HH:MM time"
	case "weekdays":
		return `must be "all" or a JSON array of weekday names`
	case "challenge_duration":
		return "must be a supported challenge duration in days"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// validWeekdaysSpec accepts the "all" sentinel or a JSON array of
// lowercase weekday names.
func validWeekdaysSpec(spec string) bool {
	trimmed := strings.TrimSpace(spec)
	if strings.EqualFold(trimmed, models.PublishDaysAll) {
		return true
	}

	var days []string
	if err := json.Unmarshal([]byte(trimmed), &days); err != nil {
		return false
	}
	for _, d := range days {
		if !weekdayNames[strings.ToLower(strings.TrimSpace(d))] {
			return false
		}
	}
	return true
}
