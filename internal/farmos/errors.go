package farmos

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError describes a failed farmOS request.
// Status is zero when the request never produced a response.
type HTTPError struct {
	Status     int
	StatusText string
	Message    string
	Err        error
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

func statusError(resp *http.Response) *HTTPError {
	return &HTTPError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Message:    fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
	}
}

func transportError(err error) *HTTPError {
	return &HTTPError{Message: err.Error(), Err: err}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// StatusTextOf returns the HTTP status text carried by err, or "".
func StatusTextOf(err error) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusText
	}
	return ""
}
