package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationResult is the field-keyed outcome of input validation.
// Errors block computation; warnings ride along on the result.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   map[string]string `json:"errors"`
	Warnings map[string]string `json:"warnings"`
}

// NewValidationResult returns an empty, valid result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid:  true,
		Errors:   map[string]string{},
		Warnings: map[string]string{},
	}
}

// AddError records a blocking problem for a field and marks the result invalid.
func (v *ValidationResult) AddError(field, message string) {
	v.Errors[field] = message
	v.IsValid = false
}

// AddWarning records an advisory problem; computation still proceeds.
func (v *ValidationResult) AddWarning(field, message string) {
	v.Warnings[field] = message
}

// InvalidInputError is returned by the calculators when a blocking
// validation error is present. It carries the field map so callers can
// render it; it is never used for ordinary out-of-range business data.
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
