package validator

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Has reports whether any error was recorded for field.
func (e ValidationErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

const (
	MsgRequired = "is required"
	MsgUUID     = "must be a valid UUID"
)

// Missing reports whether any field failed a required check.
func (e ValidationErrors) Missing() bool {
	for _, err := range e {
		if err.Message == MsgRequired {
			return true
		}
	}
	return false
}

type Validator struct {
	errors ValidationErrors
}

func New() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

// Required fails only on the empty string; whitespace counts as a value.
func (v *Validator) Required(field, value string) *Validator {
	if value == "" {
		v.AddError(field, MsgRequired)
	}
	return v
}

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func (v *Validator) UUID(field, value string) *Validator {
	if value != "" && !uuidRegex.MatchString(value) {
		v.AddError(field, MsgUUID)
	}
	return v
}

func ValidateExtractTextRequest(imageURL string) ValidationErrors {
	v := New()
	v.Required("imageUrl", imageURL)
	return v.Errors()
}

func ValidateVerifyIdentityRequest(name, dob, extractedText, userID string) ValidationErrors {
	v := New()

	v.Required("name", name)
	v.Required("dob", dob)
	v.Required("extractedText", extractedText)
	v.Required("userId", userID).UUID("userId", userID)

	return v.Errors()
}
