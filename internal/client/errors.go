package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

const (
	CodeNetwork      = "NETWORK_ERROR"
	CodeTimeout      = "TIMEOUT_ERROR"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeUnknown      = "UNKNOWN_ERROR"
)

// ErrAuthRequired is matched with errors.Is when a call needs a token
// and none is cached.
var ErrAuthRequired = errors.New("authentication required")

// APIError is returned by every Client method that fails.
type APIError struct {
	Message string
	Code    string
	// Status is the HTTP status, or 0 when no response arrived.
	Status int
	Err    error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func errAuthRequired() *APIError {
	return &APIError{
		Message: "Please log in first",
		Code:    CodeAuthRequired,
		Err:     ErrAuthRequired,
	}
}

// classifyTransportError maps a failed round trip onto a timeout,
// network or unknown error.
func classifyTransportError(err error) *APIError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &APIError{Message: "Request timed out", Code: CodeTimeout, Err: err}
	case errors.As(err, &netErr):
		return &APIError{Message: "Could not reach the server", Code: CodeNetwork, Err: err}
	default:
		return &APIError{Message: err.Error(), Code: CodeUnknown, Err: err}
	}
}

// fromResponse builds an error from a non-2xx response body. The server's
// code wins; otherwise the code is ERROR_<status>.
func fromResponse(status int, body errorBody) *APIError {
	e := &APIError{
		Message: body.Error,
		Code:    body.Code,
		Status:  status,
	}
	if e.Code == "" {
		e.Code = fmt.Sprintf("ERROR_%d", status)
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
