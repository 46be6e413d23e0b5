package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrCompletionService   = errors.New("completion service failed")
	ErrStorage             = errors.New("ledger storage unavailable")
	ErrInvalidAmount       = errors.New("invalid credit amount")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrInvalidEntryType    = errors.New("invalid credit entry type")
	ErrSecretNotFound      = errors.New("secret not found")
)

// Violation is one failed field constraint.
type Violation struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Label + " " + v.Message
}

// ValidationError carries every violated constraint of a request.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type InsufficientCreditsError struct {
	UserID   UserID
	Balance  int64
	Required int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("%s: balance %d, required %d", ErrInsufficientCredits, e.Balance, e.Required)
}

func (e *InsufficientCreditsError) Unwrap() error {
	return ErrInsufficientCredits
}

// CompletionServiceError wraps an upstream generation failure. Err keeps the
// provider detail for logs; UserMessage is safe to show.
type CompletionServiceError struct {
	Provider string
	Err      error
}

func (e *CompletionServiceError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrCompletionService, e.Provider, e.Err)
}

func (e *CompletionServiceError) Unwrap() []error {
	return []error{ErrCompletionService, e.Err}
}

func (e *CompletionServiceError) UserMessage() string {
	return "Failed to generate email drafts. Please try again."
}

// StorageError wraps a ledger or draft store failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

func (e *StorageError) UserMessage() string {
	return "Credits are temporarily unavailable. Please try again."
}

// UserMessage returns the text a caller may show for err.
func UserMessage(err error) string {
	var validation *ValidationError
	var insufficient *InsufficientCreditsError
	var completion *CompletionServiceError
	var storage *StorageError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return "Please fix the following: " + strings.Join(violationStrings(validation.Violations), ", ")
	case errors.As(err, &insufficient):
		return "Insufficient credits. Please purchase more."
	case errors.As(err, &completion):
		return completion.UserMessage()
	case errors.As(err, &storage):
		return storage.UserMessage()
	default:
		return "Something went wrong. Please try again."
	}
}

func violationStrings(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.String())
	}
	return out
}
