package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule is a custom validator tag together with the wording used when it
// fails.
type Rule struct {
	Tag     string
	Func    validator.Func
	Message string
	Allowed string
}

// Engine wraps a validator instance and converts its errors into
// Violations. It is safe for concurrent use once constructed.
type Engine struct {
	validate *validator.Validate
	rules    map[string]Rule
}

// NewEngine builds an engine with the given custom rules registered.
func NewEngine(rules ...Rule) (*Engine, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(tagName)

	e := &Engine{validate: v, rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		if err := v.RegisterValidation(r.Tag, r.Func); err != nil {
			return nil, fmt.Errorf("register rule %q: %w", r.Tag, err)
		}
		e.rules[r.Tag] = r
	}

	return e, nil
}

// MustEngine is NewEngine for package-level initialisation.
func MustEngine(rules ...Rule) *Engine {
	e, err := NewEngine(rules...)
	if err != nil {
		panic(err)
	}
	return e
}

// Var checks a single value against tag and reports each failure as a
// violation of kind on field.
func (e *Engine) Var(field string, kind Kind, value any, tag string) Violations {
	return e.convert(e.validate.Var(value, tag), kind, field)
}

// Struct validates the `validate` tags of s. Failures are type
// violations named after the json (or param/query) name of the field.
func (e *Engine) Struct(s any) Violations {
	return e.convert(e.validate.Struct(s), KindType, "")
}

func (e *Engine) convert(err error, kind Kind, field string) Violations {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return Violations{{Field: field, Kind: kind, Message: err.Error()}}
	}

	out := make(Violations, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		name := field
		if name == "" {
			name = fieldPath(fe)
		}

		v := Violation{Field: name, Kind: kind, Message: e.message(fe)}
		switch kind {
		case KindType:
			v.Expected = e.expected(fe)
		case KindRange:
			v.Value = fe.Value()
			v.Allowed = e.allowed(fe)
		}
		out = append(out, v)
	}

	return out
}

func (e *Engine) message(fe validator.FieldError) string {
	if r, ok := e.rules[fe.Tag()]; ok {
		return r.Message
	}

	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		default:
			return fmt.Sprintf("must be at least %s", fe.Param())
		}

	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must not contain more than %s items", fe.Param())
		default:
			return fmt.Sprintf("must not exceed %s", fe.Param())
		}

	case "oneof":
		return fmt.Sprintf("must be one of: %s", oneOf(fe.Param()))

	case "http_url":
		return "must be a valid http or https URL"

	case "url":
		return "must be a valid URL"

	case "uuid":
		return "must be a valid UUID"

	case "printascii":
		return "must contain printable ASCII characters only"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s check", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func (e *Engine) expected(fe validator.FieldError) string {
	if r, ok := e.rules[fe.Tag()]; ok && r.Allowed != "" {
		return r.Allowed
	}

	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.String {
			return "non-empty string"
		}
		return "value"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("string of at least %s characters", fe.Param())
		}
		return ">= " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("string of at most %s characters", fe.Param())
		}
		return "<= " + fe.Param()
	case "oneof":
		return "one of: " + oneOf(fe.Param())
	case "http_url":
		return "http or https URL"
	default:
		return fe.Tag()
	}
}

func (e *Engine) allowed(fe validator.FieldError) string {
	if r, ok := e.rules[fe.Tag()]; ok && r.Allowed != "" {
		return r.Allowed
	}

	switch fe.Tag() {
	case "min":
		return ">= " + fe.Param()
	case "max":
		return "<= " + fe.Param()
	default:
		return e.expected(fe)
	}
}

func oneOf(param string) string {
	return strings.Join(strings.Fields(param), ", ")
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return strings.ToLower(fe.Field())
}

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"json", "param", "query"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return strings.ToLower(fld.Name)
}
