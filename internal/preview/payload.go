// Package preview turns located templates into payloads for a rendering
// surface and keeps a preview attached to its template across edits.
package preview

import (
	"github.com/opencode-ai/tsvg/internal/detect"
	"github.com/opencode-ai/tsvg/internal/infer"
)

// MessageTypeUpdate tags every payload pushed to a rendering surface.
const MessageTypeUpdate = "update"

// Payload is the data a rendering surface needs to draw a template and run
// its own substitution as values change.
type Payload struct {
	Type          string            `json:"type"`
	RawBody       string            `json:"rawContent"`
	Variables     []string          `json:"variables"`
	DefaultValues map[string]string `json:"defaultValues"`
	// Found is false when no template is left to show. An empty template
	// body is still found.
	Found bool `json:"found"`
}

// Build runs classification over a match and packages the result.
func Build(match detect.Match) Payload {
	variables := match.Variables
	if variables == nil {
		variables = detect.ExtractVariables(match.RawBody)
	}

	return Payload{
		Type:          MessageTypeUpdate,
		RawBody:       match.RawBody,
		Variables:     variables,
		DefaultValues: infer.Defaults(match.RawBody, variables),
		Found:         true,
	}
}

// Empty is the payload sent when the tracked template is gone and nothing
// can replace it.
func Empty() Payload {
	return Payload{
		Type:          MessageTypeUpdate,
		Variables:     []string{},
		DefaultValues: map[string]string{},
	}
}
