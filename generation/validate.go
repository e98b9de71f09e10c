package generation

import (
	"strings"

	"github.com/deppfellow/seedance-go/validation"
)

// Result is the outcome of validating a request: either a normalized
// Request or a non-empty list of violations.
type Result struct {
	Request    Request
	Violations validation.Violations
}

// Valid reports whether the request passed every check.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns the violations as an error, or nil when the request is valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Violations
}

// Validate runs every check on p and, when none fail, returns the
// normalized request. All checks run; failures accumulate.
func Validate(p Params) Result {
	return validate(&p, nil)
}

// ValidateJSON decodes and validates the flat JSON form of a request.
// Decoding problems are reported alongside the other violations.
func ValidateJSON(raw []byte) Result {
	p, report := decodeParams(raw)
	if len(report.root) > 0 {
		return Result{Violations: report.root}
	}
	return validate(&p, &report)
}

func validate(p *Params, decoded *decodeReport) Result {
	types := validateFieldTypes(p)
	ranges := validateRanges(p)

	var vs validation.Violations
	for i := range fields {
		var already validation.Violations
		if decoded != nil {
			already = decoded.fields[i]
		}
		vs = append(vs, already...)
		vs = append(vs, dropReported(types[i], already)...)
		vs = append(vs, ranges[i]...)
	}
	if decoded != nil {
		vs = append(vs, decoded.unknown...)
	}

	vs = append(vs, validateContentCombination(p)...)
	vs = append(vs, validateModelCompatibility(p)...)

	if len(vs) > 0 {
		return Result{Violations: vs}
	}
	return Result{Request: normalize(p)}
}

// validateFieldTypes checks declared types and enumerations, one slot
// per row of the field table.
func validateFieldTypes(p *Params) []validation.Violations {
	out := make([]validation.Violations, len(fields))
	for i, f := range fields {
		if f.types != nil {
			out[i] = f.types(p)
		}
	}
	return out
}

// validateRanges checks numeric bounds, one slot per row of the field
// table.
func validateRanges(p *Params) []validation.Violations {
	out := make([]validation.Violations, len(fields))
	for i, f := range fields {
		if f.ranges != nil {
			out[i] = f.ranges(p)
		}
	}
	return out
}

// dropReported removes checks on values the decoder already rejected,
// such as "is required" on a text that was not a string.
func dropReported(vs, already validation.Violations) validation.Violations {
	if len(already) == 0 {
		return vs
	}

	var out validation.Violations
	for _, v := range vs {
		covered := false
		for _, a := range already {
			if a.Field == v.Field || strings.HasPrefix(a.Field, v.Field+".") {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, v)
		}
	}
	return out
}
