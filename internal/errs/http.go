package errs

import "strings"

// FieldError is a single field- or rule-level problem.
//
// Example:
//
//	{ "field": "content[1].role", "error": "must be one of: first_frame, last_frame, reference_image", "kind": "type" }
type FieldError struct {
	// Field is the field path or rule name the error relates to.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`

	// Kind is the violation class (type, range, combination, compatibility).
	// Empty for errors that did not come from request validation.
	Kind string `json:"kind,omitempty"`
}

// HTTPError is the custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "VALIDATION_FAILED").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets the error handler replace the message with a generic one.
//   - Errors: per-field problems, set for validation failures.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`
}

// Error makes *HTTPError satisfy the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and status are
// not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" to "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
