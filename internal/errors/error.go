package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryProtocol   Category = "protocol"
	CategoryCLI        Category = "cli"
)

// RatingError is a structured error with a registered code, an optional
// element reference and a fix suggestion.
type RatingError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (runtime, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Element is the id of the element involved, if any.
	Element string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RatingError) Error() string {
	msg := e.Message
	if e.Element != "" {
		msg = fmt.Sprintf("%s (element %q)", msg, e.Element)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RatingError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a RatingError with the same code.
func (e *RatingError) Is(target error) bool {
	t, ok := target.(*RatingError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithElement records the id of the element the error concerns.
func (e *RatingError) WithElement(id string) *RatingError {
	e.Element = id
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RatingError) WithSuggestion(s string) *RatingError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RatingError) WithDetail(d string) *RatingError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RatingError) Wrap(err error) *RatingError {
	e.Wrapped = err
	return e
}

// New creates a RatingError from a registered error code.
func New(code string) *RatingError {
	template, ok := Lookup(code)
	if !ok {
		return &RatingError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RatingError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// FromError wraps a standard error in a RatingError.
func FromError(err error, code string) *RatingError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RatingError); ok {
		return re
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first RatingError in err's chain, or "".
func CodeOf(err error) string {
	for err != nil {
		if re, ok := err.(*RatingError); ok && re.Code != "" {
			return re.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
