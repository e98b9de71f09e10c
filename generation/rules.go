package generation

import (
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/seedance-go/validation"
)

const (
	tagDuration = "seedance_duration"
	tagFrames   = "seedance_frames"
	tagSeed     = "seedance_seed"
)

const (
	minDuration = 2
	maxDuration = 12
	minFrames   = 29
	maxFrames   = 289
	maxSeed     = 1<<32 - 1
)

const (
	durationMessage = "must be -1 (chosen by the model) or between 2 and 12 seconds"
	durationAllowed = "-1 or 2..12"
	framesMessage   = "must be of the form 25+4n between 29 and 289"
	framesAllowed   = "25+4n, 29..289"
	seedMessage     = "must be -1 (random) or between 0 and 4294967295"
	seedAllowed     = "-1 or 0..4294967295"
	expiryMessage   = "must be between 3600 and 259200 seconds"
	expiryAllowed   = "3600..259200"
)

var engine = validation.MustEngine(
	validation.Rule{
		Tag:     tagDuration,
		Func:    func(fl validator.FieldLevel) bool { return durationInRange(fl.Field().Int()) },
		Message: durationMessage,
		Allowed: durationAllowed,
	},
	validation.Rule{
		Tag:     tagFrames,
		Func:    func(fl validator.FieldLevel) bool { return framesInRange(fl.Field().Int()) },
		Message: framesMessage,
		Allowed: framesAllowed,
	},
	validation.Rule{
		Tag:     tagSeed,
		Func:    func(fl validator.FieldLevel) bool { return seedInRange(fl.Field().Int()) },
		Message: seedMessage,
		Allowed: seedAllowed,
	},
)

func durationInRange(d int64) bool {
	return d == -1 || (d >= minDuration && d <= maxDuration)
}

func framesInRange(f int64) bool {
	return f >= minFrames && f <= maxFrames && (f-25)%4 == 0
}

func seedInRange(s int64) bool {
	return s >= -1 && s <= maxSeed
}

// framesForDuration is the frame count the service renders for a fixed
// duration at 24 fps.
func framesForDuration(d int) int {
	return 24*d + 1
}

func combination(rule, message string, items []int) validation.Violation {
	return validation.Violation{
		Field:   rule,
		Kind:    validation.KindCombination,
		Message: message,
		Items:   items,
	}
}

func validateContentCombination(p *Params) validation.Violations {
	var vs validation.Violations

	if len(p.Content) == 0 {
		vs = append(vs, combination("content", "must contain at least one item", nil))
	}

	var drafts, others, first, last, refs []int
	for i, item := range p.Content {
		switch it := item.(type) {
		case DraftTaskContent:
			drafts = append(drafts, i)
		case ImageContent:
			others = append(others, i)
			switch it.Role {
			case RoleFirstFrame:
				first = append(first, i)
			case RoleLastFrame:
				last = append(last, i)
			case RoleReferenceImage:
				refs = append(refs, i)
			}
		default:
			// text, and items that failed to decode
			others = append(others, i)
		}
	}

	if len(drafts) > 1 {
		vs = append(vs, combination("draft_task_count", "at most one draft_task item is allowed", drafts))
	}
	if len(drafts) > 0 && len(others) > 0 {
		items := append(append([]int{}, drafts...), others...)
		vs = append(vs, combination("draft_task_exclusive", "a draft_task item cannot be combined with other content", sorted(items)))
	}
	if len(first) > 1 {
		vs = append(vs, combination("first_frame_count", "at most one first_frame image is allowed", first))
	}
	if len(refs) > 1 {
		vs = append(vs, combination("reference_image_count", "at most one reference_image image is allowed", refs))
	}
	if len(last) > 1 {
		vs = append(vs, combination("last_frame_count", "at most one last_frame image is allowed", last))
	}
	if len(first) > 0 && len(refs) > 0 {
		items := append(append([]int{}, first...), refs...)
		vs = append(vs, combination("first_frame_reference_image_exclusive", "first_frame and reference_image images cannot be combined", sorted(items)))
	}
	if len(last) > 0 && len(first) == 0 {
		vs = append(vs, combination("last_frame_requires_first_frame", "a last_frame image requires a first_frame image", last))
	}
	if p.CameraFixed != nil && *p.CameraFixed && len(refs) > 0 {
		vs = append(vs, combination("camera_fixed_reference_image", "camera_fixed is not supported with a reference_image image", refs))
	}

	if p.Duration != nil && p.Frames != nil {
		d, f := *p.Duration, *p.Frames
		if d != -1 && durationInRange(int64(d)) && framesInRange(int64(f)) && f != framesForDuration(d) {
			vs = append(vs, combination("duration_frames_mismatch", "frames must equal 24*duration+1 when both are set", nil))
		}
	}

	return vs
}

func validateModelCompatibility(p *Params) validation.Violations {
	var vs validation.Violations

	model := strings.TrimSpace(p.Model)
	caps := CapabilitiesOf(model)
	incompatible := func(field, message string) {
		vs = append(vs, validation.Violation{
			Field:   field,
			Kind:    validation.KindCompatibility,
			Message: message,
			Model:   model,
		})
	}

	if p.GenerateAudio != nil && *p.GenerateAudio && !caps.Audio {
		incompatible("generate_audio", "is only supported by Seedance 1.5 pro models")
	}
	if p.Draft != nil && *p.Draft && !caps.Draft {
		incompatible("draft", "is only supported by Seedance 1.5 pro models")
	}
	if !caps.Draft {
		for _, item := range p.Content {
			if _, ok := item.(DraftTaskContent); ok {
				incompatible("content", "draft_task items are only supported by Seedance 1.5 pro models")
				break
			}
		}
	}
	if p.Draft != nil && *p.Draft && p.Resolution != nil && *p.Resolution != Resolution480p {
		incompatible("resolution", "must be 480p when draft is enabled")
	}

	return vs
}

func sorted(items []int) []int {
	slices.Sort(items)
	return items
}
