package attendance

import (
	"errors"
	"fmt"
)

// ErrNetwork classifies every failed exchange with the collection endpoint:
// transport errors, cancellation, non-2xx statuses, and undecodable bodies.
var ErrNetwork = errors.New("attendance request failed")

// ErrIncompleteDraft is returned when a create is attempted without name, date, and time in.
var ErrIncompleteDraft = errors.New("name, date and time in are required")

// ErrMissingID indicates a delete was requested for a record without an identifier.
var ErrMissingID = errors.New("record has no id")

// RequestError describes a failed call against the collection endpoint.
type RequestError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	RequestID  string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s attendance: %s %s: status %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s attendance: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

// Unwrap exposes both ErrNetwork and the underlying cause to errors.Is/As.
func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

// RequestID extracts the X-Request-ID of a failed call, if err carries one.
func RequestID(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.RequestID
	}
	return ""
}

// StatusCode extracts the HTTP status of a failed call, or 0 when none was received.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
