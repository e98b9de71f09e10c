package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/deppfellow/seedance-go/validation"
)

type (
	decodeFunc func(p *Params, raw json.RawMessage) validation.Violations
	checkFunc  func(p *Params) validation.Violations
)

// field is one row of the request table. Rows are kept in declaration
// order, which is also the order violations are reported in.
type field struct {
	name   string
	decode decodeFunc
	types  checkFunc
	ranges checkFunc
}

var fields = []field{
	{
		name: "model",
		decode: func(p *Params, raw json.RawMessage) validation.Violations {
			return decodeString("model", raw, &p.Model)
		},
		types: func(p *Params) validation.Violations {
			return engine.Var("model", validation.KindType, strings.TrimSpace(p.Model), "required,max=256")
		},
	},
	{
		name:   "content",
		decode: decodeContent,
		types:  checkContentItems,
		ranges: func(p *Params) validation.Violations {
			vs := engine.Var("content", validation.KindRange, p.Content, "max=10")
			for i := range vs {
				vs[i].Value = len(p.Content)
				vs[i].Allowed = "1..10 items"
			}
			return vs
		},
	},
	{
		name:   "callback_url",
		decode: optional("callback_url", "string", func(p *Params) **string { return &p.CallbackURL }),
		types: func(p *Params) validation.Violations {
			if p.CallbackURL == nil {
				return nil
			}
			return engine.Var("callback_url", validation.KindType, *p.CallbackURL, "http_url,max=2048")
		},
	},
	{
		name:   "return_last_frame",
		decode: optional("return_last_frame", "boolean", func(p *Params) **bool { return &p.ReturnLastFrame }),
	},
	{
		name:   "service_tier",
		decode: optional("service_tier", "string", func(p *Params) **ServiceTier { return &p.ServiceTier }),
		types: func(p *Params) validation.Violations {
			if p.ServiceTier == nil {
				return nil
			}
			return engine.Var("service_tier", validation.KindType, string(*p.ServiceTier), "oneof=default flex")
		},
	},
	{
		name:   "execution_expires_after",
		decode: integer("execution_expires_after", expiryMessage, expiryAllowed, func(p *Params) **int { return &p.ExecutionExpiresAfter }),
		ranges: func(p *Params) validation.Violations {
			if p.ExecutionExpiresAfter == nil {
				return nil
			}
			return engine.Var("execution_expires_after", validation.KindRange, *p.ExecutionExpiresAfter, "min=3600,max=259200")
		},
	},
	{
		name:   "generate_audio",
		decode: optional("generate_audio", "boolean", func(p *Params) **bool { return &p.GenerateAudio }),
	},
	{
		name:   "draft",
		decode: optional("draft", "boolean", func(p *Params) **bool { return &p.Draft }),
	},
	{
		name:   "resolution",
		decode: optional("resolution", "string", func(p *Params) **Resolution { return &p.Resolution }),
		types: func(p *Params) validation.Violations {
			if p.Resolution == nil {
				return nil
			}
			return engine.Var("resolution", validation.KindType, string(*p.Resolution), "oneof=480p 720p 1080p")
		},
	},
	{
		name:   "ratio",
		decode: optional("ratio", "string", func(p *Params) **Ratio { return &p.Ratio }),
		types: func(p *Params) validation.Violations {
			if p.Ratio == nil {
				return nil
			}
			return engine.Var("ratio", validation.KindType, string(*p.Ratio), "oneof=16:9 4:3 1:1 3:4 9:16 21:9 adaptive")
		},
	},
	{
		name:   "duration",
		decode: integer("duration", durationMessage, durationAllowed, func(p *Params) **int { return &p.Duration }),
		ranges: func(p *Params) validation.Violations {
			if p.Duration == nil {
				return nil
			}
			return engine.Var("duration", validation.KindRange, *p.Duration, tagDuration)
		},
	},
	{
		name:   "frames",
		decode: integer("frames", framesMessage, framesAllowed, func(p *Params) **int { return &p.Frames }),
		ranges: func(p *Params) validation.Violations {
			if p.Frames == nil {
				return nil
			}
			return engine.Var("frames", validation.KindRange, *p.Frames, tagFrames)
		},
	},
	{
		name:   "seed",
		decode: integer("seed", seedMessage, seedAllowed, func(p *Params) **int64 { return &p.Seed }),
		ranges: func(p *Params) validation.Violations {
			if p.Seed == nil {
				return nil
			}
			return engine.Var("seed", validation.KindRange, *p.Seed, tagSeed)
		},
	},
	{
		name:   "camera_fixed",
		decode: optional("camera_fixed", "boolean", func(p *Params) **bool { return &p.CameraFixed }),
	},
	{
		name:   "watermark",
		decode: optional("watermark", "boolean", func(p *Params) **bool { return &p.Watermark }),
	},
}

func fieldIndex(name string) int {
	return slices.IndexFunc(fields, func(f field) bool { return f.name == name })
}

func checkContentItems(p *Params) validation.Violations {
	var vs validation.Violations
	for i, item := range p.Content {
		path := fmt.Sprintf("content[%d]", i)

		switch it := item.(type) {
		case TextContent:
			vs = append(vs, engine.Var(path+".text", validation.KindType, it.Text, "required,max=5000")...)
		case ImageContent:
			vs = append(vs, engine.Var(path+".image_url.url", validation.KindType, it.URL, "required,max=2048")...)
			if it.Role != "" {
				vs = append(vs, engine.Var(path+".role", validation.KindType, string(it.Role), "oneof=first_frame last_frame reference_image")...)
			}
		case DraftTaskContent:
			vs = append(vs, engine.Var(path+".draft_task.id", validation.KindType, it.ID, "required,max=128")...)
		default:
			vs = append(vs, validation.Violation{
				Field:    path,
				Kind:     validation.KindType,
				Message:  "must be a text, image_url or draft_task item",
				Expected: "one of: text, image_url, draft_task",
			})
		}
	}
	return vs
}

// decodeReport holds what the strict decoder found, grouped the way the
// validator reports it.
type decodeReport struct {
	root    validation.Violations
	fields  []validation.Violations
	unknown validation.Violations
}

func (d decodeReport) flatten() validation.Violations {
	out := slices.Clone(d.root)
	for _, vs := range d.fields {
		out = append(out, vs...)
	}
	return append(out, d.unknown...)
}

// DecodeParams decodes the flat JSON form of a request. Unknown fields
// and values of the wrong JSON type come back as type violations; the
// rest of the object is still decoded.
func DecodeParams(raw []byte) (Params, validation.Violations) {
	p, report := decodeParams(raw)
	return p, report.flatten()
}

func decodeParams(raw []byte) (Params, decodeReport) {
	var p Params
	report := decodeReport{fields: make([]validation.Violations, len(fields))}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		report.root = validation.Violations{mismatch("request", "object")}
		return p, report
	}

	for i, f := range fields {
		if value, ok := obj[f.name]; ok {
			report.fields[i] = f.decode(&p, value)
		}
	}

	for _, key := range sortedKeys(obj) {
		if fieldIndex(key) < 0 {
			report.unknown = append(report.unknown, unknownField(key, "is not a recognized field"))
		}
	}

	return p, report
}

func decodeContent(p *Params, raw json.RawMessage) validation.Violations {
	if isNull(raw) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return validation.Violations{mismatch("content", "array")}
	}

	var vs validation.Violations
	p.Content = make([]ContentItem, len(items))
	for i, item := range items {
		decoded, itemViolations := decodeContentItem(i, item)
		p.Content[i] = decoded
		vs = append(vs, itemViolations...)
	}
	return vs
}

func optional[T any](name, expected string, target func(*Params) **T) decodeFunc {
	return func(p *Params, raw json.RawMessage) validation.Violations {
		if isNull(raw) {
			return nil
		}

		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return validation.Violations{mismatch(name, expected)}
		}
		*target(p) = &v
		return nil
	}
}

// maxInt64Digits bounds the decimal exponent of a non-zero whole number
// that can still fit in an int64.
const maxInt64Digits = 18

// integer decodes a JSON number holding a whole value, in any notation
// (121, 121.0, 1.21e2). Non-numbers and fractions are type violations.
// Whole numbers the field type cannot hold are range violations carrying
// the number as written.
func integer[T int | int64](name, message, allowed string, target func(*Params) **T) decodeFunc {
	return func(p *Params, raw json.RawMessage) validation.Violations {
		if isNull(raw) {
			return nil
		}

		num, ok := jsonNumber(raw)
		if !ok {
			return validation.Violations{mismatch(name, "integer")}
		}

		outOfRange := validation.Violations{{
			Field:   name,
			Kind:    validation.KindRange,
			Message: message,
			Value:   num,
			Allowed: allowed,
		}}

		d, err := decimal.NewFromString(num.String())
		if err != nil {
			return outOfRange
		}

		var v T
		if !d.IsZero() {
			if !d.IsInteger() {
				return validation.Violations{mismatch(name, "integer")}
			}
			if d.Exponent() > maxInt64Digits {
				return outOfRange
			}

			n := d.BigInt()
			if !n.IsInt64() || int64(T(n.Int64())) != n.Int64() {
				return outOfRange
			}
			v = T(n.Int64())
		}

		*target(p) = &v
		return nil
	}
}

// jsonNumber reports whether raw is a JSON number literal. Quoted
// numbers do not count.
func jsonNumber(raw json.RawMessage) (json.Number, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	num, ok := v.(json.Number)
	return num, ok
}

func decodeString(name string, raw json.RawMessage, dst *string) validation.Violations {
	if raw == nil || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return validation.Violations{mismatch(name, "string")}
	}
	return nil
}

func mismatch(name, expected string) validation.Violation {
	article := "a"
	if strings.ContainsRune("aeiou", rune(expected[0])) {
		article = "an"
	}
	return validation.Violation{
		Field:    name,
		Kind:     validation.KindType,
		Message:  fmt.Sprintf("must be %s %s", article, expected),
		Expected: expected,
	}
}

func unknownField(name, message string) validation.Violation {
	return validation.Violation{
		Field:    name,
		Kind:     validation.KindType,
		Message:  message,
		Expected: "absent",
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func sortedKeys(obj map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
