package backend

import "fmt"

// StoreError represents an error from a store operation. It carries the
// HTTP status code when the failure came off the wire, plus enough context
// to say which tab and operation were involved.
type StoreError struct {
	Operation  string // e.g. "FetchCheckins", "AppendKudo"
	StatusCode int    // HTTP status code (0 if not an HTTP error)
	Tab        string // Affected spreadsheet tab, if any
	Message    string // Human-readable error message
	Body       string // Optional: response body for debugging
	Err        error  // Optional: underlying error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying error for error wrapping
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a 404 Not Found
func (e *StoreError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true if the error is a 401 Unauthorized or 403 Forbidden
func (e *StoreError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsServerError returns true if the error is a 5xx server error
func (e *StoreError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NewStoreError creates a new StoreError
func NewStoreError(operation string, statusCode int, message string) *StoreError {
	return &StoreError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
	}
}

// WithTab adds the spreadsheet tab to the error for context
func (e *StoreError) WithTab(tab string) *StoreError {
	e.Tab = tab
	return e
}

// WithBody adds the response body to the error for debugging
func (e *StoreError) WithBody(body string) *StoreError {
	e.Body = body
	return e
}

// WithError wraps an underlying error
func (e *StoreError) WithError(err error) *StoreError {
	e.Err = err
	return e
}
