package generation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/seedance-go/validation"
)

const (
	liteModel = "doubao-seedance-1-0-lite-i2v-250428"
	proModel  = "doubao-seedance-1-5-pro-251215"
)

func textOnly(model string) Params {
	return Params{Model: model, Content: []ContentItem{Text("a cat surfing a wave")}}
}

func TestValidate_MinimalRequestIsNormalized(t *testing.T) {
	res := Validate(textOnly(liteModel))
	require.True(t, res.Valid(), res.Violations)
	require.NoError(t, res.Err())

	req := res.Request
	assert.Equal(t, liteModel, req.Model())
	assert.Equal(t, TierDefault, req.ServiceTier())
	assert.Equal(t, DefaultExecutionExpiresAfter, req.ExecutionExpiresAfter())
	assert.Equal(t, int64(-1), req.Seed())
	assert.False(t, req.Watermark())
	assert.False(t, req.ReturnLastFrame())
	assert.False(t, req.CameraFixed())

	_, ok := req.GenerateAudio()
	assert.False(t, ok, "audio is not sent to models without audio support")
	_, ok = req.Draft()
	assert.False(t, ok)
}

func TestValidate_ProModelDefaults(t *testing.T) {
	res := Validate(textOnly("Seedance-1.5-Pro"))
	require.True(t, res.Valid(), res.Violations)

	audio, ok := res.Request.GenerateAudio()
	require.True(t, ok)
	assert.True(t, audio)

	draft, ok := res.Request.Draft()
	require.True(t, ok)
	assert.False(t, draft)
}

func TestValidate_AudioAndDraftDroppedOnOtherModels(t *testing.T) {
	p := textOnly(liteModel)
	p.GenerateAudio = Ptr(false)
	p.Draft = Ptr(false)

	res := Validate(p)
	require.True(t, res.Valid(), res.Violations)

	_, ok := res.Request.GenerateAudio()
	assert.False(t, ok)
	_, ok = res.Request.Draft()
	assert.False(t, ok)

	body, err := json.Marshal(res.Request)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "generate_audio")
	assert.NotContains(t, string(body), `"draft"`)
}

func TestValidate_EmptyContent(t *testing.T) {
	res := Validate(Params{Model: liteModel})
	require.False(t, res.Valid())

	combos := res.Violations.Of(validation.KindCombination)
	require.Len(t, combos, 1)
	assert.Equal(t, "content", combos[0].Field)
}

func TestValidate_CombinationRules(t *testing.T) {
	tests := []struct {
		name    string
		content []ContentItem
		params  func(p *Params)
		rules   []string
		items   [][]int
	}{
		{
			name:    "first frame with reference image",
			content: []ContentItem{Image("https://x/a.png", RoleFirstFrame), Image("https://x/b.png", RoleReferenceImage)},
			rules:   []string{"first_frame_reference_image_exclusive"},
			items:   [][]int{{0, 1}},
		},
		{
			name:    "draft task with text",
			content: []ContentItem{DraftTask("cgt-1"), Text("more")},
			rules:   []string{"draft_task_exclusive"},
			items:   [][]int{{0, 1}},
		},
		{
			name:    "two draft tasks",
			content: []ContentItem{DraftTask("cgt-1"), DraftTask("cgt-2")},
			rules:   []string{"draft_task_count"},
			items:   [][]int{{0, 1}},
		},
		{
			name:    "last frame without first frame",
			content: []ContentItem{Text("p"), Image("https://x/a.png", RoleLastFrame)},
			rules:   []string{"last_frame_requires_first_frame"},
			items:   [][]int{{1}},
		},
		{
			name:    "two first frames",
			content: []ContentItem{Image("https://x/a.png", RoleFirstFrame), Image("https://x/b.png", RoleFirstFrame)},
			rules:   []string{"first_frame_count"},
			items:   [][]int{{0, 1}},
		},
		{
			name:    "two reference images",
			content: []ContentItem{Image("https://x/a.png", RoleReferenceImage), Image("https://x/b.png", RoleReferenceImage)},
			rules:   []string{"reference_image_count"},
			items:   [][]int{{0, 1}},
		},
		{
			name: "two last frames",
			content: []ContentItem{
				Image("https://x/a.png", RoleFirstFrame),
				Image("https://x/b.png", RoleLastFrame),
				Image("https://x/c.png", RoleLastFrame),
			},
			rules: []string{"last_frame_count"},
			items: [][]int{{1, 2}},
		},
		{
			name:    "fixed camera with reference image",
			content: []ContentItem{Text("p"), Image("https://x/a.png", RoleReferenceImage)},
			params:  func(p *Params) { p.CameraFixed = Ptr(true) },
			rules:   []string{"camera_fixed_reference_image"},
			items:   [][]int{{1}},
		},
		{
			name:    "duration and frames disagree",
			content: []ContentItem{Text("p")},
			params:  func(p *Params) { p.Duration = Ptr(5); p.Frames = Ptr(29) },
			rules:   []string{"duration_frames_mismatch"},
			items:   [][]int{nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Model: proModel, Content: tt.content}
			if tt.params != nil {
				tt.params(&p)
			}

			res := Validate(p)
			require.False(t, res.Valid())
			assert.Empty(t, res.Violations.Of(validation.KindType))
			assert.Empty(t, res.Violations.Of(validation.KindRange))

			combos := res.Violations.Of(validation.KindCombination)
			assert.Equal(t, tt.rules, combos.Fields())
			for i, want := range tt.items {
				assert.Equal(t, want, combos[i].Items)
			}
		})
	}
}

func TestValidate_ValidCombinations(t *testing.T) {
	tests := []struct {
		name    string
		content []ContentItem
		params  func(p *Params)
	}{
		{name: "first and last frame", content: []ContentItem{Text("p"), Image("https://x/a.png", RoleFirstFrame), Image("https://x/b.png", RoleLastFrame)}},
		{name: "single reference image", content: []ContentItem{Text("p"), Image("https://x/a.png", RoleReferenceImage)}},
		{name: "image without role", content: []ContentItem{Image("data:image/png;base64,AAAA", "")}},
		{name: "draft task alone", content: []ContentItem{DraftTask("cgt-20250101")}},
		{name: "matching duration and frames", content: []ContentItem{Text("p")}, params: func(p *Params) { p.Duration = Ptr(5); p.Frames = Ptr(121) }},
		{name: "auto duration with frames", content: []ContentItem{Text("p")}, params: func(p *Params) { p.Duration = Ptr(-1); p.Frames = Ptr(57) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Model: proModel, Content: tt.content}
			if tt.params != nil {
				tt.params(&p)
			}
			res := Validate(p)
			assert.True(t, res.Valid(), res.Violations)
		})
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		params func(p *Params)
		field  string
		valid  bool
	}{
		{name: "frames 29", params: func(p *Params) { p.Frames = Ptr(29) }, valid: true},
		{name: "frames 289", params: func(p *Params) { p.Frames = Ptr(289) }, valid: true},
		{name: "frames 30", params: func(p *Params) { p.Frames = Ptr(30) }, field: "frames"},
		{name: "frames 25", params: func(p *Params) { p.Frames = Ptr(25) }, field: "frames"},
		{name: "frames 293", params: func(p *Params) { p.Frames = Ptr(293) }, field: "frames"},
		{name: "duration -1", params: func(p *Params) { p.Duration = Ptr(-1) }, valid: true},
		{name: "duration 2", params: func(p *Params) { p.Duration = Ptr(2) }, valid: true},
		{name: "duration 12", params: func(p *Params) { p.Duration = Ptr(12) }, valid: true},
		{name: "duration 13", params: func(p *Params) { p.Duration = Ptr(13) }, field: "duration"},
		{name: "duration 1", params: func(p *Params) { p.Duration = Ptr(1) }, field: "duration"},
		{name: "duration 0", params: func(p *Params) { p.Duration = Ptr(0) }, field: "duration"},
		{name: "seed -1", params: func(p *Params) { p.Seed = Ptr[int64](-1) }, valid: true},
		{name: "seed max", params: func(p *Params) { p.Seed = Ptr[int64](4294967295) }, valid: true},
		{name: "seed -2", params: func(p *Params) { p.Seed = Ptr[int64](-2) }, field: "seed"},
		{name: "seed overflow", params: func(p *Params) { p.Seed = Ptr[int64](4294967296) }, field: "seed"},
		{name: "expiry low", params: func(p *Params) { p.ExecutionExpiresAfter = Ptr(3599) }, field: "execution_expires_after"},
		{name: "expiry high", params: func(p *Params) { p.ExecutionExpiresAfter = Ptr(259201) }, field: "execution_expires_after"},
		{name: "expiry bounds", params: func(p *Params) { p.ExecutionExpiresAfter = Ptr(3600) }, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := textOnly(liteModel)
			tt.params(&p)

			res := Validate(p)
			if tt.valid {
				assert.True(t, res.Valid(), res.Violations)
				return
			}

			require.Len(t, res.Violations, 1)
			v := res.Violations[0]
			assert.Equal(t, validation.KindRange, v.Kind)
			assert.Equal(t, tt.field, v.Field)
			assert.NotEmpty(t, v.Allowed)
			assert.NotNil(t, v.Value)
		})
	}
}

func TestValidateJSON_Ranges(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		field string
		kind  validation.Kind
		valid bool
	}{
		{name: "frames 121.0", extra: `"frames": 121.0`, valid: true},
		{name: "frames 1.21e2", extra: `"frames": 1.21e2`, valid: true},
		{name: "frames 1e2", extra: `"frames": 1e2`, field: "frames", kind: validation.KindRange},
		{name: "duration 5.5", extra: `"duration": 5.5`, field: "duration", kind: validation.KindType},
		{name: "seed 1e20", extra: `"seed": 1e20`, field: "seed", kind: validation.KindRange},
		{name: "seed 99999999999999999999", extra: `"seed": 99999999999999999999`, field: "seed", kind: validation.KindRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"model": "` + liteModel + `", "content": [{"type": "text", "text": "a"}], ` + tt.extra + `}`

			res := ValidateJSON([]byte(raw))
			if tt.valid {
				assert.True(t, res.Valid(), res.Violations)
				return
			}

			require.Len(t, res.Violations, 1)
			assert.Equal(t, tt.field, res.Violations[0].Field)
			assert.Equal(t, tt.kind, res.Violations[0].Kind)
		})
	}
}

func TestValidate_ContentCount(t *testing.T) {
	p := Params{Model: liteModel}
	for range 11 {
		p.Content = append(p.Content, Text("p"))
	}

	res := Validate(p)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "content", res.Violations[0].Field)
	assert.Equal(t, validation.KindRange, res.Violations[0].Kind)
	assert.Equal(t, 11, res.Violations[0].Value)
}

func TestValidate_TypeChecks(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		fields []string
	}{
		{name: "blank model", params: Params{Model: "   ", Content: []ContentItem{Text("p")}}, fields: []string{"model"}},
		{name: "empty text", params: Params{Model: liteModel, Content: []ContentItem{Text("")}}, fields: []string{"content[0].text"}},
		{name: "unknown role", params: Params{Model: liteModel, Content: []ContentItem{Image("https://x/a.png", "middle_frame")}}, fields: []string{"content[0].role"}},
		{name: "empty draft id", params: Params{Model: proModel, Content: []ContentItem{DraftTask("")}}, fields: []string{"content[0].draft_task.id"}},
		{name: "nil item", params: Params{Model: liteModel, Content: []ContentItem{nil}}, fields: []string{"content[0]"}},
		{name: "bad callback", params: func() Params { p := textOnly(liteModel); p.CallbackURL = Ptr("ftp://cb"); return p }(), fields: []string{"callback_url"}},
		{name: "bad tier", params: func() Params { p := textOnly(liteModel); p.ServiceTier = Ptr(ServiceTier("priority")); return p }(), fields: []string{"service_tier"}},
		{name: "bad resolution", params: func() Params { p := textOnly(liteModel); p.Resolution = Ptr(Resolution("4k")); return p }(), fields: []string{"resolution"}},
		{name: "bad ratio", params: func() Params { p := textOnly(liteModel); p.Ratio = Ptr(Ratio("2:1")); return p }(), fields: []string{"ratio"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.params)
			require.False(t, res.Valid())
			assert.Equal(t, tt.fields, res.Violations.Fields())
			for _, v := range res.Violations {
				assert.Equal(t, validation.KindType, v.Kind)
				assert.NotEmpty(t, v.Expected)
			}
		})
	}
}

func TestValidate_Compatibility(t *testing.T) {
	tests := []struct {
		name   string
		model  string
		params func(p *Params)
		fields []string
	}{
		{name: "audio on lite", model: liteModel, params: func(p *Params) { p.GenerateAudio = Ptr(true) }, fields: []string{"generate_audio"}},
		{name: "audio off on lite", model: liteModel, params: func(p *Params) { p.GenerateAudio = Ptr(false) }},
		{name: "audio on pro", model: proModel, params: func(p *Params) { p.GenerateAudio = Ptr(true) }},
		{name: "draft on lite", model: liteModel, params: func(p *Params) { p.Draft = Ptr(true) }, fields: []string{"draft"}},
		{name: "draft on pro", model: proModel, params: func(p *Params) { p.Draft = Ptr(true) }},
		{name: "draft at 720p", model: proModel, params: func(p *Params) { p.Draft = Ptr(true); p.Resolution = Ptr(Resolution720p) }, fields: []string{"resolution"}},
		{name: "draft at 480p", model: proModel, params: func(p *Params) { p.Draft = Ptr(true); p.Resolution = Ptr(Resolution480p) }},
		{name: "draft task on lite", model: liteModel, params: func(p *Params) { p.Content = []ContentItem{DraftTask("cgt-1")} }, fields: []string{"content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := textOnly(tt.model)
			tt.params(&p)

			res := Validate(p)
			if len(tt.fields) == 0 {
				assert.True(t, res.Valid(), res.Violations)
				return
			}

			assert.Equal(t, tt.fields, res.Violations.Fields())
			for _, v := range res.Violations {
				assert.Equal(t, validation.KindCompatibility, v.Kind)
				assert.Equal(t, tt.model, v.Model)
			}
		})
	}
}

func TestValidate_AccumulatesInOrder(t *testing.T) {
	p := Params{
		Model: liteModel,
		Content: []ContentItem{
			Image("https://x/a.png", RoleFirstFrame),
			Image("https://x/b.png", RoleReferenceImage),
		},
		GenerateAudio: Ptr(true),
		Duration:      Ptr(13),
		Seed:          Ptr[int64](-2),
		Ratio:         Ptr(Ratio("5:4")),
	}

	res := Validate(p)
	assert.Equal(t, []string{
		"ratio",
		"duration",
		"seed",
		"first_frame_reference_image_exclusive",
		"generate_audio",
	}, res.Violations.Fields())
	assert.Equal(t, []validation.Kind{
		validation.KindType,
		validation.KindRange,
		validation.KindRange,
		validation.KindCombination,
		validation.KindCompatibility,
	}, kinds(res.Violations))
}

func TestValidateJSON_EndToEnd(t *testing.T) {
	raw := `{
		"model": "doubao-seedance-1-0-lite-i2v-250428",
		"content": [
			{"type": "text", "text": "a fox in the snow"},
			{"type": "image_url", "image_url": {"url": "https://example.com/first.png"}, "role": "first_frame"},
			{"type": "image_url", "image_url": {"url": "https://example.com/last.png"}, "role": "last_frame"}
		],
		"duration": 5,
		"ratio": "16:9"
	}`

	res := ValidateJSON([]byte(raw))
	require.True(t, res.Valid(), res.Violations)

	body, err := json.Marshal(res.Request)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"model": "doubao-seedance-1-0-lite-i2v-250428",
		"content": [
			{"type": "text", "text": "a fox in the snow"},
			{"type": "image_url", "image_url": {"url": "https://example.com/first.png"}, "role": "first_frame"},
			{"type": "image_url", "image_url": {"url": "https://example.com/last.png"}, "role": "last_frame"}
		],
		"return_last_frame": false,
		"service_tier": "default",
		"execution_expires_after": 172800,
		"ratio": "16:9",
		"duration": 5,
		"seed": -1,
		"camera_fixed": false,
		"watermark": false
	}`, string(body))
}

func TestValidateJSON_EndToEndRejected(t *testing.T) {
	raw := `{
		"model": "doubao-seedance-1-0-pro-250528",
		"content": [
			{"type": "text", "text": "a fox"},
			{"type": "image_url", "image_url": {"url": "https://example.com/last.png"}, "role": "last_frame"}
		],
		"generate_audio": true,
		"frames": 30
	}`

	res := ValidateJSON([]byte(raw))
	require.False(t, res.Valid())
	assert.Equal(t, []string{"frames", "last_frame_requires_first_frame", "generate_audio"}, res.Violations.Fields())
	assert.Equal(t, 30, res.Violations[0].Value)
	assert.Equal(t, []int{1}, res.Violations[1].Items)
	assert.Equal(t, "doubao-seedance-1-0-pro-250528", res.Violations[2].Model)
}

func kinds(vs validation.Violations) []validation.Kind {
	out := make([]validation.Kind, len(vs))
	for i, v := range vs {
		out[i] = v.Kind
	}
	return out
}
