// Package validator checks contact form input before it reaches the CMS.
package validator

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"contacts/internal/models"
	"contacts/pkg/utils"
)

// FormMessage is the summary shown when a form has field errors.
const FormMessage = "Please, fill out all missing fields."

// Field limits.
const (
	MinFieldLength = 2
	MaxFieldLength = 255
)

// Field error messages.
const (
	MsgRequired   = "Required"
	MsgInvalidURL = "Invalid url"
)

// FormResult holds field level errors for a submitted form.
type FormResult struct {
	FieldErrors map[string][]string `json:"errors"`
	Message     string              `json:"message,omitempty"`
	Valid       bool                `json:"-"`
}

// ContactValidator validates the create contact form.
type ContactValidator struct {
	strings *utils.StringHelper
	http    *utils.HTTPHelper
}

// NewContactValidator creates a new validator.
func NewContactValidator() *ContactValidator {
	return &ContactValidator{
		strings: utils.NewStringHelper(),
		http:    utils.NewHTTPHelper(),
	}
}

// ValidateContactForm validates m with a default validator.
func ValidateContactForm(m models.ContactMutation) *FormResult {
	return NewContactValidator().Validate(m)
}

// Validate checks that avatar is a URL and that avatar, first, last and
// twitter each hold at least two characters.
func (v *ContactValidator) Validate(m models.ContactMutation) *FormResult {
	result := &FormResult{FieldErrors: map[string][]string{}}

	if errs := v.checkURL(m.Avatar); len(errs) > 0 {
		result.FieldErrors["avatar"] = errs
	}

	fields := []struct {
		value *string
		name  string
	}{
		{value: m.First, name: "first"},
		{value: m.Last, name: "last"},
		{value: m.Twitter, name: "twitter"},
	}

	for _, f := range fields {
		if errs := v.checkText(f.value); len(errs) > 0 {
			result.FieldErrors[f.name] = errs
		}
	}

	result.Valid = len(result.FieldErrors) == 0
	if !result.Valid {
		result.Message = FormMessage
	}

	return result
}

func (v *ContactValidator) checkURL(value *string) []string {
	if value == nil {
		return []string{MsgRequired}
	}

	s := v.strings.TrimWhitespace(*value)

	var errs []string
	if !v.http.IsValidURL(s) {
		errs = append(errs, MsgInvalidURL)
	}

	if msg := lengthError(s); msg != "" {
		errs = append(errs, msg)
	}

	return errs
}

func (v *ContactValidator) checkText(value *string) []string {
	if value == nil {
		return []string{MsgRequired}
	}

	if msg := lengthError(v.strings.NormalizeWhitespace(*value)); msg != "" {
		return []string{msg}
	}

	return nil
}

func lengthError(s string) string {
	if govalidator.StringLength(s, strconv.Itoa(MinFieldLength), strconv.Itoa(MaxFieldLength)) {
		return ""
	}

	if utf8.RuneCountInString(s) < MinFieldLength {
		return fmt.Sprintf("String must contain at least %d character(s)", MinFieldLength)
	}

	return fmt.Sprintf("String must contain at most %d character(s)", MaxFieldLength)
}
