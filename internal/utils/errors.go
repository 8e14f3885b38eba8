package utils

import (
	"fmt"
)

// ErrorWithSuggestion wraps an error with a helpful suggestion for the user
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to work
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// Common error constructors with suggestions

// ErrNoMember creates an error when the acting member name is unknown
func ErrNoMember() error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("no member name configured"),
		Suggestion: "Set \"member\" in ~/.config/teampulse/config.json or pass --member",
	}
}

// ErrKudoNotFound creates an error when a reply targets an unknown kudo
func ErrKudoNotFound(kudoID string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("kudo '%s' not found", kudoID),
		Suggestion: "Run 'teampulse kudos list' to see kudo IDs",
	}
}

// ErrEmptySnapshot creates an error when a read command finds no local data
func ErrEmptySnapshot() error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("local snapshot is empty"),
		Suggestion: "Run 'teampulse refresh' to pull records from the configured store",
	}
}
