// Package errors provides structured error handling for the metamodel engine.
// Every failure carries a unique code, a category, and a fixed human-readable
// message. The message wording is part of the engine contract, so Error()
// returns it verbatim; richer terminal rendering is available through Format.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error code in the metamodel engine
type ErrorCode string

// ErrorCategory represents the category of a model error
type ErrorCategory string

const (
	// CategoryNaming represents name conflicts (NAM100-199)
	CategoryNaming ErrorCategory = "naming"
	// CategoryReference represents unknown or foreign references (REF200-299)
	CategoryReference ErrorCategory = "reference"
	// CategoryType represents value and link type mismatches (TYP300-399)
	CategoryType ErrorCategory = "type"
	// CategoryMultiplicity represents multiplicity violations (MUL400-499)
	CategoryMultiplicity ErrorCategory = "multiplicity"
	// CategoryNavigability represents navigability violations (NAV500-599)
	CategoryNavigability ErrorCategory = "navigability"
	// CategoryInheritance represents inheritance rule violations (INH600-699)
	CategoryInheritance ErrorCategory = "inheritance"
	// CategoryExtension represents stereotype extension violations (EXT700-799)
	CategoryExtension ErrorCategory = "extension"
	// CategoryEnumeration represents enumeration violations (ENM800-899)
	CategoryEnumeration ErrorCategory = "enumeration"
)

// ErrorSeverity indicates the severity level of an error
type ErrorSeverity string

const (
	// SeverityError indicates a failed operation
	SeverityError ErrorSeverity = "error"
	// SeverityWarning indicates a finding that did not fail the operation
	SeverityWarning ErrorSeverity = "warning"
)

// ModelError represents a structured engine error
type ModelError struct {
	// Code is the unique error code (e.g., "MUL400", "EXT700")
	Code ErrorCode `json:"code"`
	// Type is a machine-readable error type identifier
	Type string `json:"type"`
	// Category is the error category
	Category ErrorCategory `json:"category"`
	// Severity is the error severity level
	Severity ErrorSeverity `json:"severity"`
	// Message is the fixed contract message
	Message string `json:"message"`
	// Element names the model element the error is about (optional)
	Element string `json:"element,omitempty"`
	// Expected describes what was expected (optional)
	Expected string `json:"expected,omitempty"`
	// Actual describes what was actually found (optional)
	Actual string `json:"actual,omitempty"`
	// Suggestion provides a hint for fixing the error (optional)
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *ModelError) Error() string {
	return e.Message
}

// Is reports whether target is a ModelError with the same code, which lets
// callers match failures with errors.Is against a Sentinel.
func (e *ModelError) Is(target error) bool {
	t, ok := target.(*ModelError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Format returns a human-readable error message for terminal output
func (e *ModelError) Format() string {
	return FormatError(e)
}

// ToJSON returns the error as an indented JSON string
func (e *ModelError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithElement sets the element the error refers to
func (e *ModelError) WithElement(element string) *ModelError {
	e.Element = element
	return e
}

// WithExpected sets the expected value for the error
func (e *ModelError) WithExpected(expected string) *ModelError {
	e.Expected = expected
	return e
}

// WithActual sets the actual value for the error
func (e *ModelError) WithActual(actual string) *ModelError {
	e.Actual = actual
	return e
}

// WithSuggestion sets a suggestion for fixing the error
func (e *ModelError) WithSuggestion(suggestion string) *ModelError {
	e.Suggestion = suggestion
	return e
}

// Sentinel returns a comparison value for errors.Is that matches every
// ModelError carrying code.
func Sentinel(code ErrorCode) error {
	return &ModelError{Code: code}
}

// HasCode reports whether err is, or wraps, a ModelError with the given code
func HasCode(err error, code ErrorCode) bool {
	me, ok := As(err)
	return ok && me.Code == code
}

// As unwraps err until it finds a ModelError
func As(err error) (*ModelError, bool) {
	var me *ModelError
	if stderrors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// newError creates a new ModelError with the given parameters
func newError(code ErrorCode, typ string, category ErrorCategory, message string) *ModelError {
	return &ModelError{
		Code:     code,
		Type:     typ,
		Category: category,
		Severity: SeverityError,
		Message:  message,
	}
}

// quote renders a name the way every contract message does
func quote(name string) string {
	return fmt.Sprintf("'%s'", name)
}
