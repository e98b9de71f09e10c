// Package validation contains the violation model shared by every
// request check in this module.
//
// Rules are expressed as `validator` tags wherever the library can say
// them, and every failure is turned into a Violation the caller can
// read without knowing anything about the tag syntax. Checks never stop
// at the first failure: callers collect Violations from independent
// checks and return them together.
package validation

import (
	"errors"
	"strings"
)

// Kind classifies a violation.
type Kind string

const (
	// KindType marks a wrong type, a value outside an enumeration, a
	// missing required value or an unknown field.
	KindType Kind = "type"
	// KindRange marks a numeric value (or item count) outside its bounds.
	KindRange Kind = "range"
	// KindCombination marks a rule spanning several content items or fields.
	KindCombination Kind = "combination"
	// KindCompatibility marks a parameter the selected model does not support.
	KindCompatibility Kind = "compatibility"
)

// Violation is a single rule failure.
//
// Field holds the offending field path (`content[1].role`) for type and
// range violations, the rule name for combination violations and the
// parameter name for compatibility violations.
type Violation struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Kind     Kind   `json:"kind"`
	Expected string `json:"expected,omitempty"`
	Value    any    `json:"value,omitempty"`
	Allowed  string `json:"allowed,omitempty"`
	Items    []int  `json:"items,omitempty"`
	Model    string `json:"model,omitempty"`
}

func (v Violation) String() string {
	return v.Field + " " + v.Message
}

// Violations is an ordered list of failures that satisfies error.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation failed"
	}

	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Of returns the violations of the given kind, in order.
func (vs Violations) Of(kind Kind) Violations {
	var out Violations
	for _, v := range vs {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// Has reports whether any violation names field.
func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Fields returns the field (or rule) names in report order.
func (vs Violations) Fields() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Field
	}
	return out
}

// From extracts Violations from an error chain.
func From(err error) (Violations, bool) {
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

// Validatable is implemented by payload types that know how to validate
// themselves. Validate returns Violations (or nil).
type Validatable interface {
	Validate() error
}
