package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// meetingTypes are the ceremony kinds accepted by the meeting_type tag
var meetingTypes = map[string]struct{}{
	"standup":       {},
	"planning":      {},
	"review":        {},
	"retrospective": {},
}

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("meeting_type", validateMeetingType)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

func validateMeetingType(fl validator.FieldLevel) bool {
	_, ok := meetingTypes[strings.ToLower(fl.Field().String())]
	return ok
}
