package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the coarse classification of a remote failure.
type ErrorType string

const (
	ErrorTypeRequest ErrorType = "request_error"
	ErrorTypeUnknown ErrorType = "unknown_error"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("seedance: api key is required")

// RequestError is a 4xx answer from the generation API: the service
// understood the call and refused it.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
	Param      string
	RequestID  string
}

func (e *RequestError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("seedance: request rejected (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("seedance: request rejected (%d): %s", e.StatusCode, e.Message)
}

// Type returns ErrorTypeRequest.
func (e *RequestError) Type() ErrorType { return ErrorTypeRequest }

// UnknownError covers everything that is not a clean 4xx: transport
// failures, 5xx and other statuses, and bodies that do not decode.
// StatusCode is zero when no response was received.
type UnknownError struct {
	StatusCode int
	Message    string
	Body       string
	Err        error
}

func (e *UnknownError) Error() string {
	msg := e.Message
	if msg == "" && e.StatusCode != 0 {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("seedance: %s: %v", msg, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("seedance: %s (status %d)", msg, e.StatusCode)
	}
	return "seedance: " + msg
}

// Type returns ErrorTypeUnknown.
func (e *UnknownError) Type() ErrorType { return ErrorTypeUnknown }

func (e *UnknownError) Unwrap() error { return e.Err }

// TypeOf classifies err. ok is false for errors that did not come from
// the remote call, such as validation failures.
func TypeOf(err error) (t ErrorType, ok bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return ErrorTypeRequest, true
	}
	var unknownErr *UnknownError
	if errors.As(err, &unknownErr) {
		return ErrorTypeUnknown, true
	}
	return "", false
}
