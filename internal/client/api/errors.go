package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrLocalStorage marks a submission failure that happened before any
// network I/O, reading local client state. Not a delivery attempt: the
// sync engine must not bill it against the record's retry budget.
var ErrLocalStorage = errors.New("local storage unavailable")

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Retryable reports whether a delivery error is worth another attempt.
// Connection failures, timeouts and server-side errors are transient;
// any other 4xx means the server has permanently refused the payload
// and retrying would only burn the record's attempt budget.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode >= 500:
			return true
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests:
			return true
		default:
			return false
		}
	}

	// Anything below HTTP status semantics: DNS failure, refused
	// connection, deadline exceeded.
	return true
}
