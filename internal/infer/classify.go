package infer

import "strings"

// Kind is the semantic type guessed for a placeholder.
type Kind string

const (
	KindGeneric Kind = "generic"
	KindColor   Kind = "color"
	KindNumeric Kind = "numeric"
)

// Class is the result of classifying one placeholder.
type Class struct {
	Kind Kind `json:"kind"`
	// Subtype refines numeric placeholders: opacity, position, radius,
	// stroke-width or size.
	Subtype string `json:"subtype,omitempty"`
	Default string `json:"default"`
}

// Classify maps a placeholder name and the attribute names it is bound to
// onto a Class. Color wins over numeric; anything else is generic with an
// empty default.
func Classify(name string, attributes []string) Class {
	n := normalize(name)
	attrs := make([]string, 0, len(attributes))
	for _, attr := range attributes {
		attrs = append(attrs, normalize(attr))
	}

	switch {
	case colorAttributes.hasAny(attrs) || colorNames.has(n):
		return Class{Kind: KindColor, Default: ColorDefault}
	case numericAttributes.hasAny(attrs) || numericNames.has(n):
		return classifyNumeric(n, attrs)
	default:
		return Class{Kind: KindGeneric}
	}
}

// DefaultValue returns the default literal for a placeholder.
func DefaultValue(name string, attributes []string) string {
	return Classify(name, attributes).Default
}

func classifyNumeric(name string, attrs []string) Class {
	for _, rule := range numericRules {
		if rule.names.has(name) || rule.attrs.hasAny(attrs) {
			return Class{Kind: KindNumeric, Subtype: rule.subtype, Default: rule.value}
		}
	}
	return Class{Kind: KindNumeric, Subtype: "size", Default: numericFallback}
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "")
}
