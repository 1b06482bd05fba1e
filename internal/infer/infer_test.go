package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		name    string
		varName string
		attrs   []string
		want    string
	}{
		{"color by name", "fill", nil, ColorDefault},
		{"color by alias", "bg", nil, ColorDefault},
		{"color by attribute", "c", []string{"fill"}, ColorDefault},
		{"hyphenated color attribute", "c", []string{"stop-color"}, ColorDefault},
		{"radius name", "radius", nil, "40"},
		{"r attribute", "size", []string{"r"}, "40"},
		{"generic numeric attribute", "w", []string{"width"}, "100"},
		{"generic numeric name", "h", nil, "100"},
		{"opacity name", "opacity", nil, "1"},
		{"opacity attribute", "alpha", []string{"opacity"}, "1"},
		{"position name", "cx", nil, "50"},
		{"position attribute", "left", []string{"x1"}, "50"},
		{"stroke width name", "stroke-width", nil, "2"},
		{"stroke width attribute", "sw", []string{"stroke-width"}, "2"},
		{"case folded", "FILL", nil, ColorDefault},
		{"generic", "label", nil, ""},
		{"unknown attribute", "title", []string{"aria-label"}, ""},
		{"numeric-only attribute outside rules", "dash", []string{"stroke-dasharray"}, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultValue(tt.varName, tt.attrs))
		})
	}
}

func TestClassifyColorBeatsNumeric(t *testing.T) {
	class := Classify("size", []string{"width", "fill"})
	assert.Equal(t, KindColor, class.Kind)
	assert.Equal(t, ColorDefault, class.Default)

	// The attribute decides even when the name carries no color hint.
	class = Classify("primary", []string{"fill"})
	assert.Equal(t, KindColor, class.Kind)
}

func TestClassifyNumericRuleOrder(t *testing.T) {
	// opacity is checked before position even if both could apply.
	class := Classify("x", []string{"opacity"})
	assert.Equal(t, Class{Kind: KindNumeric, Subtype: "opacity", Default: "1"}, class)

	class = Classify("r", []string{"stroke-width"})
	assert.Equal(t, Class{Kind: KindNumeric, Subtype: "radius", Default: "40"}, class)

	class = Classify("width", nil)
	assert.Equal(t, Class{Kind: KindNumeric, Subtype: "size", Default: "100"}, class)
}

func TestClassifyGeneric(t *testing.T) {
	assert.Equal(t, Class{Kind: KindGeneric}, Classify("label", nil))
}

func TestContexts(t *testing.T) {
	body := `<rect width="${w}" height='${ h }' fill="${c}" stroke="${c}" data-x="${w}"/>` +
		`<text>${label}</text><rect width="${w}"/>`

	got := Contexts(body, []string{"w", "h", "c", "label"})

	assert.Equal(t, map[string][]string{
		"w":     {"width", "data-x"},
		"h":     {"height"},
		"c":     {"fill", "stroke"},
		"label": {},
	}, got)
}

func TestContextsIgnoresUnknownAndPartialValues(t *testing.T) {
	body := `<rect width="${w}px" fill="${other}" x="${ x }"/>`

	got := Contexts(body, []string{"w", "x"})

	assert.Equal(t, map[string][]string{
		"w": {},
		"x": {"x"},
	}, got)
}

func TestDefaultsEndToEnd(t *testing.T) {
	body := `<rect width="${w}" fill="${c}"/>`

	got := Defaults(body, []string{"w", "c"})

	assert.Equal(t, map[string]string{"w": "100", "c": "#3366cc"}, got)
}

func TestClasses(t *testing.T) {
	body := `<circle cx="${cx}" r="${radius}" opacity="${o}"/>${title}`

	got := Classes(body, []string{"cx", "radius", "o", "title"})

	assert.Equal(t, "position", got["cx"].Subtype)
	assert.Equal(t, "40", got["radius"].Default)
	assert.Equal(t, "1", got["o"].Default)
	assert.Equal(t, KindGeneric, got["title"].Kind)
}
