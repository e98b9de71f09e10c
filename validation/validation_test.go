package validation

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenRule() Rule {
	return Rule{
		Tag: "even",
		Func: func(fl validator.FieldLevel) bool {
			return fl.Field().Int()%2 == 0
		},
		Message: "must be even",
		Allowed: "even integer",
	}
}

func TestEngine_Var(t *testing.T) {
	e := MustEngine(evenRule())

	tests := []struct {
		name     string
		kind     Kind
		value    any
		tag      string
		wantMsg  string
		expected string
		allowed  string
	}{
		{name: "required string", kind: KindType, value: "", tag: "required", wantMsg: "is required", expected: "non-empty string"},
		{name: "string max", kind: KindType, value: "abcdef", tag: "max=3", wantMsg: "must not exceed 3 characters", expected: "string of at most 3 characters"},
		{name: "oneof", kind: KindType, value: "x", tag: "oneof=a b", wantMsg: "must be one of: a, b", expected: "one of: a, b"},
		{name: "http url", kind: KindType, value: "ftp://host", tag: "http_url", wantMsg: "must be a valid http or https URL", expected: "http or https URL"},
		{name: "numeric min", kind: KindRange, value: 10, tag: "min=3600", wantMsg: "must be at least 3600", allowed: ">= 3600"},
		{name: "slice max", kind: KindRange, value: []int{1, 2, 3}, tag: "max=2", wantMsg: "must not contain more than 2 items", allowed: "<= 2"},
		{name: "custom rule", kind: KindRange, value: 3, tag: "even", wantMsg: "must be even", allowed: "even integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := e.Var("field", tt.kind, tt.value, tt.tag)
			require.Len(t, vs, 1)
			assert.Equal(t, "field", vs[0].Field)
			assert.Equal(t, tt.kind, vs[0].Kind)
			assert.Equal(t, tt.wantMsg, vs[0].Message)
			assert.Equal(t, tt.expected, vs[0].Expected)
			assert.Equal(t, tt.allowed, vs[0].Allowed)
			if tt.kind == KindRange {
				assert.Equal(t, tt.value, vs[0].Value)
			}
		})
	}
}

func TestEngine_VarPasses(t *testing.T) {
	e := MustEngine(evenRule())

	assert.Nil(t, e.Var("seed", KindRange, 4, "even"))
	assert.Nil(t, e.Var("callback_url", KindType, "https://example.com/hook", "http_url"))
}

func TestEngine_Struct(t *testing.T) {
	type payload struct {
		ID    string `param:"id" validate:"required"`
		Email string `json:"email" validate:"omitempty,max=5"`
	}

	e := MustEngine()
	vs := e.Struct(payload{Email: "toolong"})

	require.Len(t, vs, 2)
	assert.Equal(t, []string{"id", "email"}, vs.Fields())
	assert.Equal(t, KindType, vs[0].Kind)
}

func TestNewEngine_RejectsEmptyTag(t *testing.T) {
	_, err := NewEngine(Rule{Tag: "", Func: func(validator.FieldLevel) bool { return true }})
	assert.Error(t, err)
}

func TestViolations(t *testing.T) {
	vs := Violations{
		{Field: "frames", Kind: KindRange, Message: "must be 25+4n"},
		{Field: "last_frame_requires_first_frame", Kind: KindCombination, Message: "needs a first frame"},
	}

	assert.Equal(t, "validation failed: frames must be 25+4n; last_frame_requires_first_frame needs a first frame", vs.Error())
	assert.True(t, vs.Has("frames"))
	assert.False(t, vs.Has("seed"))
	assert.Len(t, vs.Of(KindCombination), 1)
	assert.Empty(t, vs.Of(KindCompatibility))

	wrapped := fmt.Errorf("create task: %w", vs)
	got, ok := From(wrapped)
	require.True(t, ok)
	assert.Equal(t, vs, got)

	_, ok = From(fmt.Errorf("plain"))
	assert.False(t, ok)
}
