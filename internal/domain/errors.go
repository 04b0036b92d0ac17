package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Generation errors
	ErrGenerationFailure           ErrorCode = "GENERATION_FAILURE"
	ErrStructureGenerationFailure  ErrorCode = "STRUCTURE_GENERATION_FAILURE"
	ErrUnitEnrichmentFailure       ErrorCode = "UNIT_ENRICHMENT_FAILURE"
	ErrAssessmentGenerationFailure ErrorCode = "ASSESSMENT_GENERATION_FAILURE"
	ErrVideoLookupFailure          ErrorCode = "VIDEO_LOOKUP_FAILURE"
	ErrSourceMaterial              ErrorCode = "SOURCE_MATERIAL_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithContext attaches a diagnostic key/value pair and returns the error.
func (e *DomainError) WithContext(key string, value any) *DomainError {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Context map[string]any `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether any DomainError in the chain carries the code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var de *DomainError
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewGenerationFailure(message string, err error) *DomainError {
	return NewError(ErrGenerationFailure, message, err)
}

func NewStructureGenerationFailure(err error) *DomainError {
	return NewError(ErrStructureGenerationFailure, "failed to generate course structure", err)
}

func NewUnitEnrichmentFailure(unitID string, err error) *DomainError {
	return NewError(ErrUnitEnrichmentFailure, "failed to enrich unit", err).WithContext("unit_id", unitID)
}

func NewAssessmentGenerationFailure(title string, err error) *DomainError {
	return NewError(ErrAssessmentGenerationFailure, fmt.Sprintf("failed to generate assessment %q", title), err)
}

func NewVideoLookupFailure(query string, err error) *DomainError {
	return NewError(ErrVideoLookupFailure, "video lookup failed", err).WithContext("query", query)
}

func NewSourceMaterialError(message string, err error) *DomainError {
	return NewError(ErrSourceMaterial, message, err)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Value   any       `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field problem of one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: "field is required"}
}

func NewInvalidFormatError(field string, value any, expected string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInvalidFormat,
		Message: fmt.Sprintf("invalid format, expected %s", expected),
		Value:   value,
	}
}

func NewOutOfRangeError(field string, value any, limits string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("value out of range (%s)", limits),
		Value:   value,
	}
}

// NewValidationError wraps field errors into a DomainError.
func NewValidationError(errs ValidationErrors) *DomainError {
	return NewError(CodeValidation, errs.Error(), errs)
}
