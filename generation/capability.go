package generation

import "strings"

// Capabilities lists the optional features a model family supports.
type Capabilities struct {
	Audio bool `json:"audio"`
	Draft bool `json:"draft"`
}

var families = []struct {
	marker string
	caps   Capabilities
}{
	{marker: "1-5-pro", caps: Capabilities{Audio: true, Draft: true}},
}

// CapabilitiesOf detects the feature set of a model identifier such as
// "doubao-seedance-1-5-pro-251215" or "seedance-1.5-pro". Unknown
// models support none of the optional features.
func CapabilitiesOf(model string) Capabilities {
	canonical := canonicalModel(model)
	for _, f := range families {
		if strings.Contains(canonical, f.marker) {
			return f.caps
		}
	}
	return Capabilities{}
}

func canonicalModel(model string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', ' ':
			return '-'
		}
		return r
	}, strings.ToLower(strings.TrimSpace(model)))
}
