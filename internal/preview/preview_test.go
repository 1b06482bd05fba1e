package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/opencode-ai/tsvg/internal/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoTemplates = "const a = /*svg*/ `<rect width=\"${w}\" fill=\"${c}\"/>`;\n" +
	"\n" +
	"const b = /*svg*/ `<circle r=\"${r}\"/>`;\n"

func TestBuildEndToEnd(t *testing.T) {
	matches := detect.Locate(twoTemplates)
	require.Len(t, matches, 2)

	payload := Build(matches[0])

	assert.Equal(t, MessageTypeUpdate, payload.Type)
	assert.Equal(t, `<rect width="${w}" fill="${c}"/>`, payload.RawBody)
	assert.Equal(t, []string{"w", "c"}, payload.Variables)
	assert.Equal(t, map[string]string{"w": "100", "c": "#3366cc"}, payload.DefaultValues)
}

func TestEmptyPayloadJSON(t *testing.T) {
	data, err := json.Marshal(Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"update","rawContent":"","variables":[],"defaultValues":{},"found":false}`, string(data))
}

func TestEmptyTemplateBodyIsFound(t *testing.T) {
	tracker := NewTracker(0)

	payload := tracker.Update("const blank = /*svg*/ ``;\n")
	assert.True(t, payload.Found)
	assert.Empty(t, payload.RawBody)
	assert.Empty(t, payload.Variables)

	payload = tracker.Update("const blank = null;\n")
	assert.False(t, payload.Found)
}

func TestTrackerKeepsAnchorLine(t *testing.T) {
	tracker := NewTracker(2)

	payload := tracker.Update(twoTemplates)
	assert.Equal(t, `<circle r="${r}"/>`, payload.RawBody)
	assert.Equal(t, map[string]string{"r": "40"}, payload.DefaultValues)
}

func TestTrackerFallsBackToOtherTemplateWhenTrackedOneIsDeleted(t *testing.T) {
	tracker := NewTracker(2)
	require.Equal(t, `<circle r="${r}"/>`, tracker.Update(twoTemplates).RawBody)

	edited := "const a = /*svg*/ `<rect width=\"${w}\" fill=\"${c}\"/>`;\n"
	payload := tracker.Update(edited)

	assert.Equal(t, `<rect width="${w}" fill="${c}"/>`, payload.RawBody)
	assert.Equal(t, []string{"w", "c"}, payload.Variables)
}

func TestTrackerFollowsBodyWhenLinesShift(t *testing.T) {
	tracker := NewTracker(2)
	require.Equal(t, `<circle r="${r}"/>`, tracker.Update(twoTemplates).RawBody)

	shifted := "// new header\n" + twoTemplates
	payload := tracker.Update(shifted)

	assert.Equal(t, `<circle r="${r}"/>`, payload.RawBody)
}

func TestTrackerEmptyWhenNothingLeft(t *testing.T) {
	tracker := NewTracker(0)
	require.NotEmpty(t, tracker.Update(twoTemplates).RawBody)

	payload := tracker.Update("const nothing = 1;\n")
	assert.Equal(t, Empty(), payload)

	// A template coming back is picked up again.
	payload = tracker.Update(twoTemplates)
	assert.Equal(t, []string{"w", "c"}, payload.Variables)
}

func TestSelect(t *testing.T) {
	doc := detect.NewTextDocument(twoTemplates)

	tests := []struct {
		name   string
		target Target
		want   int
	}{
		{"first by default", Target{}, 0},
		{"explicit line", Target{Line: LineOf(2)}, 2},
		{"explicit line without template", Target{Line: LineOf(1)}, 0},
		{"cursor line", Target{Cursor: LineOf(2)}, 2},
		{"explicit line beats cursor", Target{Line: LineOf(0), Cursor: LineOf(2)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := Select(doc, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, match.Line)
		})
	}
}

func TestSelectErrors(t *testing.T) {
	_, err := Select(nil, Target{})
	assert.True(t, errors.Is(err, ErrNoDocument))

	_, err = Select(detect.NewTextDocument("const x = `<svg/>`;"), Target{})
	assert.True(t, errors.Is(err, ErrNoTemplate))
}

func TestRender(t *testing.T) {
	payload := Build(detect.Locate(twoTemplates)[0])

	assert.Equal(t, `<rect width="100" fill="#3366cc"/>`, Render(payload, nil))
	assert.Equal(t, `<rect width="20" fill="#3366cc"/>`, Render(payload, map[string]string{"w": "20"}))
	assert.Equal(t, `<rect width="" fill="#3366cc"/>`, Render(payload, map[string]string{"w": ""}))
}

func TestSanitizeSVG(t *testing.T) {
	out := SanitizeSVG(`<svg width="10"><script>alert(1)</script><circle r="4" fill="red" onclick="x()"/></svg>`)

	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `r="4"`)
	assert.Contains(t, out, `fill="red"`)
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.Equal(t, "", SanitizeSVG("   "))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "SVG Preview: icons.ts:3", Title("/src/icons.ts", 2))
	assert.Equal(t, "SVG Preview: stdin:1", Title("-", 0))
}

func TestWritePage(t *testing.T) {
	payload := Build(detect.Locate(twoTemplates)[0])

	var buf bytes.Buffer
	err := WritePage(&buf, Page{
		Title:      "SVG Preview: a.ts:1",
		Payload:    payload,
		Values:     map[string]string{"w": "64"},
		SocketPath: "/ws",
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>SVG Preview: a.ts:1</title>")
	assert.Contains(t, html, `<rect width="64" fill="#3366cc"`)
	assert.Contains(t, html, `"variables":["w","c"]`)
	assert.Contains(t, html, `"/ws"`)
	// Values passed in stay marked as edited when updates arrive.
	assert.Contains(t, html, `new Set(["w"])`)
	assert.Contains(t, html, `"found":true`)
	// Markup inside the embedded JSON is escaped for the script context.
	assert.False(t, strings.Contains(html, `"rawContent":"<rect`))
}

func TestWritePageEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, Page{Title: "SVG Preview: a.ts:1", Payload: Payload{}}))
	assert.Contains(t, buf.String(), `"variables":[]`)
	assert.Contains(t, buf.String(), `new Set([])`)
}
