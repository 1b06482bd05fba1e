package preview

import "github.com/opencode-ai/tsvg/internal/detect"

// Values merges user overrides over the payload defaults.
func Values(p Payload, overrides map[string]string) map[string]string {
	values := make(map[string]string, len(p.DefaultValues)+len(overrides))
	for key, value := range p.DefaultValues {
		values[key] = value
	}
	for key, value := range overrides {
		values[key] = value
	}
	return values
}

// Render substitutes defaults and overrides into the payload body.
func Render(p Payload, overrides map[string]string) string {
	return detect.Substitute(p.RawBody, Values(p, overrides))
}
