package generation

// ServiceTier selects the scheduling class of a task.
type ServiceTier string

const (
	TierDefault ServiceTier = "default"
	TierFlex    ServiceTier = "flex"
)

// Resolution of the generated video.
type Resolution string

const (
	Resolution480p  Resolution = "480p"
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
)

// Ratio is the aspect ratio of the generated video.
type Ratio string

const (
	Ratio16x9     Ratio = "16:9"
	Ratio4x3      Ratio = "4:3"
	Ratio1x1      Ratio = "1:1"
	Ratio3x4      Ratio = "3:4"
	Ratio9x16     Ratio = "9:16"
	Ratio21x9     Ratio = "21:9"
	RatioAdaptive Ratio = "adaptive"
)

// Defaults applied by normalization.
const (
	DefaultExecutionExpiresAfter = 172800
	DefaultSeed                  = -1
)

// Params is an unvalidated generation request as a caller builds it.
// Optional parameters are pointers; nil means "not given".
type Params struct {
	Model                 string        `json:"model"`
	Content               []ContentItem `json:"content"`
	CallbackURL           *string       `json:"callback_url,omitempty"`
	ReturnLastFrame       *bool         `json:"return_last_frame,omitempty"`
	ServiceTier           *ServiceTier  `json:"service_tier,omitempty"`
	ExecutionExpiresAfter *int          `json:"execution_expires_after,omitempty"`
	GenerateAudio         *bool         `json:"generate_audio,omitempty"`
	Draft                 *bool         `json:"draft,omitempty"`
	Resolution            *Resolution   `json:"resolution,omitempty"`
	Ratio                 *Ratio        `json:"ratio,omitempty"`
	Duration              *int          `json:"duration,omitempty"`
	Frames                *int          `json:"frames,omitempty"`
	Seed                  *int64        `json:"seed,omitempty"`
	CameraFixed           *bool         `json:"camera_fixed,omitempty"`
	Watermark             *bool         `json:"watermark,omitempty"`
}

// UnmarshalJSON decodes the wire form strictly. Unknown fields and
// mistyped values are returned as validation.Violations.
func (p *Params) UnmarshalJSON(b []byte) error {
	decoded, vs := DecodeParams(b)
	if len(vs) > 0 {
		return vs
	}
	*p = decoded
	return nil
}

// Ptr returns a pointer to v, for filling optional parameters.
func Ptr[T any](v T) *T {
	return &v
}
