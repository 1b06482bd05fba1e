// Package infer guesses a plausible default value for each template
// placeholder from its name and the SVG attributes it is bound to.
package infer

// ColorDefault is the value offered for color-like placeholders.
const ColorDefault = "#3366cc"

const numericFallback = "100"

type nameSet map[string]struct{}

func newNameSet(names ...string) nameSet {
	set := make(nameSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s nameSet) hasAny(names []string) bool {
	for _, name := range names {
		if s.has(name) {
			return true
		}
	}
	return false
}

// Entries are normalized: lower case, hyphens removed.
var (
	numericAttributes = newNameSet(
		"width", "height", "size",
		"r", "rx", "ry",
		"cx", "cy", "x", "y", "x1", "y1", "x2", "y2",
		"strokewidth", "strokedasharray",
		"opacity", "fontsize",
		"padding", "margin", "offset",
		"stopopacity", "floodopacity",
	)

	numericNames = newNameSet(
		"width", "height", "size",
		"w", "h",
		"r", "radius",
		"cx", "cy", "x", "y",
		"strokewidth", "opacity", "fontsize",
	)

	colorAttributes = newNameSet("fill", "stroke", "color", "stopcolor", "floodcolor")

	colorNames = newNameSet("fill", "stroke", "color", "bg", "background", "fg", "foreground")

	positionNames = newNameSet("x", "y", "x1", "y1", "x2", "y2", "cx", "cy")
)

// numericRule picks a default for a numeric placeholder when either its
// name or one of its attributes is listed. Rules are tried in order.
type numericRule struct {
	subtype string
	names   nameSet
	attrs   nameSet
	value   string
}

var numericRules = []numericRule{
	{subtype: "opacity", names: newNameSet("opacity"), attrs: newNameSet("opacity"), value: "1"},
	{subtype: "position", names: positionNames, attrs: positionNames, value: "50"},
	{subtype: "radius", names: newNameSet("r", "radius"), attrs: newNameSet("r"), value: "40"},
	{subtype: "stroke-width", names: newNameSet("strokewidth"), attrs: newNameSet("strokewidth"), value: "2"},
}
