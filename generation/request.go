package generation

import (
	"encoding/json"
	"slices"
	"strings"
)

// Request is a validated, normalized generation request. It can only be
// obtained from Validate or ValidateJSON and is never modified
// afterwards; defaults are already filled in.
type Request struct {
	model                 string
	content               []ContentItem
	callbackURL           string
	returnLastFrame       bool
	serviceTier           ServiceTier
	executionExpiresAfter int
	generateAudio         *bool
	draft                 *bool
	resolution            Resolution
	ratio                 Ratio
	duration              *int
	frames                *int
	seed                  int64
	cameraFixed           bool
	watermark             bool
}

func normalize(p *Params) Request {
	r := Request{
		model:                 strings.TrimSpace(p.Model),
		content:               slices.Clone(p.Content),
		returnLastFrame:       valueOr(p.ReturnLastFrame, false),
		serviceTier:           valueOr(p.ServiceTier, TierDefault),
		executionExpiresAfter: valueOr(p.ExecutionExpiresAfter, DefaultExecutionExpiresAfter),
		resolution:            valueOr(p.Resolution, ""),
		ratio:                 valueOr(p.Ratio, ""),
		duration:              clonePtr(p.Duration),
		frames:                clonePtr(p.Frames),
		seed:                  valueOr(p.Seed, DefaultSeed),
		cameraFixed:           valueOr(p.CameraFixed, false),
		watermark:             valueOr(p.Watermark, false),
	}

	if p.CallbackURL != nil {
		r.callbackURL = *p.CallbackURL
	}

	if caps := CapabilitiesOf(r.model); caps.Audio {
		r.generateAudio = Ptr(valueOr(p.GenerateAudio, true))
	}
	if caps := CapabilitiesOf(r.model); caps.Draft {
		r.draft = Ptr(valueOr(p.Draft, false))
	}

	return r
}

func (r Request) Model() string               { return r.model }
func (r Request) CallbackURL() string         { return r.callbackURL }
func (r Request) ReturnLastFrame() bool       { return r.returnLastFrame }
func (r Request) ServiceTier() ServiceTier    { return r.serviceTier }
func (r Request) ExecutionExpiresAfter() int  { return r.executionExpiresAfter }
func (r Request) Resolution() Resolution      { return r.resolution }
func (r Request) Ratio() Ratio                { return r.ratio }
func (r Request) Seed() int64                 { return r.seed }
func (r Request) CameraFixed() bool           { return r.cameraFixed }
func (r Request) Watermark() bool             { return r.watermark }
func (r Request) Content() []ContentItem      { return slices.Clone(r.content) }
func (r Request) GenerateAudio() (bool, bool) { return deref(r.generateAudio) }
func (r Request) Draft() (bool, bool)         { return deref(r.draft) }
func (r Request) Duration() (int, bool)       { return deref(r.duration) }
func (r Request) Frames() (int, bool)         { return deref(r.frames) }

// Params returns the request as editable parameters with every default
// spelled out. Validating the result yields an equal Request.
func (r Request) Params() Params {
	p := Params{
		Model:                 r.model,
		Content:               slices.Clone(r.content),
		ReturnLastFrame:       Ptr(r.returnLastFrame),
		ServiceTier:           Ptr(r.serviceTier),
		ExecutionExpiresAfter: Ptr(r.executionExpiresAfter),
		GenerateAudio:         clonePtr(r.generateAudio),
		Draft:                 clonePtr(r.draft),
		Duration:              clonePtr(r.duration),
		Frames:                clonePtr(r.frames),
		Seed:                  Ptr(r.seed),
		CameraFixed:           Ptr(r.cameraFixed),
		Watermark:             Ptr(r.watermark),
	}
	if r.callbackURL != "" {
		p.CallbackURL = Ptr(r.callbackURL)
	}
	if r.resolution != "" {
		p.Resolution = Ptr(r.resolution)
	}
	if r.ratio != "" {
		p.Ratio = Ptr(r.ratio)
	}
	return p
}

type wireRequest struct {
	Model                 string        `json:"model"`
	Content               []ContentItem `json:"content"`
	CallbackURL           string        `json:"callback_url,omitempty"`
	ReturnLastFrame       bool          `json:"return_last_frame"`
	ServiceTier           ServiceTier   `json:"service_tier"`
	ExecutionExpiresAfter int           `json:"execution_expires_after"`
	GenerateAudio         *bool         `json:"generate_audio,omitempty"`
	Draft                 *bool         `json:"draft,omitempty"`
	Resolution            Resolution    `json:"resolution,omitempty"`
	Ratio                 Ratio         `json:"ratio,omitempty"`
	Duration              *int          `json:"duration,omitempty"`
	Frames                *int          `json:"frames,omitempty"`
	Seed                  int64         `json:"seed"`
	CameraFixed           bool          `json:"camera_fixed"`
	Watermark             bool          `json:"watermark"`
}

// MarshalJSON renders the request body sent to the generation API.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRequest{
		Model:                 r.model,
		Content:               r.content,
		CallbackURL:           r.callbackURL,
		ReturnLastFrame:       r.returnLastFrame,
		ServiceTier:           r.serviceTier,
		ExecutionExpiresAfter: r.executionExpiresAfter,
		GenerateAudio:         r.generateAudio,
		Draft:                 r.draft,
		Resolution:            r.resolution,
		Ratio:                 r.ratio,
		Duration:              r.duration,
		Frames:                r.frames,
		Seed:                  r.seed,
		CameraFixed:           r.cameraFixed,
		Watermark:             r.watermark,
	})
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return Ptr(*p)
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
