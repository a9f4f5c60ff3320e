package validator

import (
	"net/mail"
	"strings"
	"time"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{Errors: []FieldError{}}
}

func (v *ValidationResult) AddError(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

func (v *ValidationResult) HasError() bool {
	return len(v.Errors) > 0
}

func (v *ValidationResult) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, field+" is required")
	}
}

func (v *ValidationResult) MaxLength(field, value string, max int) {
	if len([]rune(value)) > max {
		v.AddError(field, field+" is too long")
	}
}

func (v *ValidationResult) Email(field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.AddError(field, field+" must be a valid email address")
	}
}

// Layout checks value parses with the given time layout.
func (v *ValidationResult) Layout(field, value, layout string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(layout, value); err != nil {
		v.AddError(field, field+" must match "+layout)
	}
}
