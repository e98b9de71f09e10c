package errs

import (
	"errors"
	"net/http"

	"github.com/deppfellow/seedance-go/client"
	"github.com/deppfellow/seedance-go/validation"
)

// CodeValidationFailed marks a request rejected by local validation.
const CodeValidationFailed = "VALIDATION_FAILED"

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional; nil means "BAD_REQUEST". errors carries field-level
// problems when there are any.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError for the rate limiter.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  "Rate limit exceeded, slow down",
		Status:   http.StatusTooManyRequests,
		Override: false,
	}
}

// NewBadGatewayError creates a 502 HTTPError for failures talking to the
// generation API.
func NewBadGatewayError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadGateway)),
		Message:  message,
		Status:   http.StatusBadGateway,
		Override: false,
	}
}

// NewInternalServerError creates a generic 500 HTTPError. Override is set
// so internal details never reach the caller.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: true,
	}
}

// ValidationError renders a violation report as a 400 response, one
// FieldError per violation in report order.
func ValidationError(vs validation.Violations) *HTTPError {
	fieldErrors := make([]FieldError, len(vs))
	for i, v := range vs {
		fieldErrors[i] = FieldError{
			Field: v.Field,
			Error: v.Message,
			Kind:  string(v.Kind),
		}
	}

	code := CodeValidationFailed
	return NewBadRequestError("Validation failed", true, &code, fieldErrors)
}

// FromUpstream maps an error returned by the generation client.
//
// Violations become a 400, a RequestError keeps the remote 4xx status
// and code, and an UnknownError becomes a 502. ok is false for anything
// else.
func FromUpstream(err error) (*HTTPError, bool) {
	if vs, isReport := validation.From(err); isReport {
		return ValidationError(vs), true
	}

	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		code := reqErr.Code
		if code == "" {
			code = MakeUpperCaseWithUnderscores(http.StatusText(reqErr.StatusCode))
		}

		httpErr := &HTTPError{
			Code:    code,
			Message: reqErr.Message,
			Status:  reqErr.StatusCode,
		}
		if reqErr.Param != "" {
			httpErr.Errors = []FieldError{{Field: reqErr.Param, Error: reqErr.Message}}
		}
		return httpErr, true
	}

	var unknownErr *client.UnknownError
	if errors.As(err, &unknownErr) {
		return NewBadGatewayError("Generation service unavailable"), true
	}

	return nil, false
}
