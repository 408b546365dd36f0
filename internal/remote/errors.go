package remote

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when an export format is not one the service offers.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// RequestFailedError reports a rejected request or a non-success response for one operation.
type RequestFailedError struct {
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestFailedError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Operation)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

// AsRequestFailed attempts to unwrap an error into a RequestFailedError.
func AsRequestFailed(err error) (*RequestFailedError, bool) {
	var rfErr *RequestFailedError
	if errors.As(err, &rfErr) {
		return rfErr, true
	}
	return nil, false
}

func requestFailed(op string, status int, message string, err error) *RequestFailedError {
	return &RequestFailedError{Operation: op, StatusCode: status, Message: message, Err: err}
}
