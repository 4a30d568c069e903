package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators
	v.RegisterValidation("noteid", validateNoteID)
	v.RegisterValidation("tag", validateTag)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs ValidationErrors
	for _, err := range err.(validator.ValidationErrors) {
		validationErrs = append(validationErrs, ValidationError{
			Field:   err.Field(),
			Message: msgForTag(err),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
		})
	}

	return validationErrs
}

// ValidateNoteID checks a note id supplied in the URL path
func (v *Validator) ValidateNoteID(noteID string) error {
	if !noteIDPattern.MatchString(noteID) {
		return ValidationErrors{{
			Field:   "note_id",
			Message: "note_id contains invalid characters (only letters, numbers, and -_. are allowed, up to 128 characters)",
			Tag:     "noteid",
			Value:   noteID,
		}}
	}
	return nil
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "noteid":
		return fmt.Sprintf("%s contains invalid characters (only letters, numbers, and -_. are allowed)", field)
	case "tag":
		return fmt.Sprintf("%s contains an invalid tag (only letters, numbers, spaces, and -_ are allowed, up to 64 characters)", field)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

var (
	noteIDPattern = regexp.MustCompile(`^[\p{L}\p{N}\-_.]{1,128}$`)
	tagPattern    = regexp.MustCompile(`^[\p{L}\p{N}\s\-_]{1,64}$`)
)

// validateNoteID validates client-supplied note id format
func validateNoteID(fl validator.FieldLevel) bool {
	return noteIDPattern.MatchString(fl.Field().String())
}

// validateTag validates a single tag value
func validateTag(fl validator.FieldLevel) bool {
	return tagPattern.MatchString(fl.Field().String())
}
