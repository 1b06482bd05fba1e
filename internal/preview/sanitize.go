package preview

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

// SanitizeSVG strips everything but an allow-list of SVG elements and
// presentation attributes. Scripts and event handlers never survive.
func SanitizeSVG(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(svgSanitizer().Sanitize(trimmed))
}

func svgSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()

		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
		policy.AllowElements("svg", "g", "title", "desc", "defs", "use", "clipPath", "mask",
			"symbol", "text", "tspan", "linearGradient", "radialGradient", "stop")
		policy.AllowElements(shapes...)

		presentation := []string{
			"id", "class", "transform", "opacity",
			"fill", "fill-opacity", "fill-rule", "stroke", "stroke-width", "stroke-opacity",
			"stroke-linecap", "stroke-linejoin", "stroke-dasharray", "stroke-dashoffset",
			"clip-path", "mask", "font-size", "font-family", "font-weight", "text-anchor",
		}
		policy.AllowAttrs(presentation...).Globally()

		policy.AllowAttrs("xmlns", "viewBox", "viewbox", "width", "height",
			"preserveAspectRatio", "preserveaspectratio", "x", "y").OnElements("svg", "symbol")
		policy.AllowAttrs("d", "cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2",
			"width", "height", "points", "pathLength").OnElements(shapes...)
		policy.AllowAttrs("x", "y", "dx", "dy").OnElements("text", "tspan")
		policy.AllowAttrs("href", "xlink:href", "x", "y", "width", "height").OnElements("use")
		policy.AllowAttrs("x1", "y1", "x2", "y2", "cx", "cy", "r", "fx", "fy",
			"gradientUnits", "gradientTransform").OnElements("linearGradient", "radialGradient")
		policy.AllowAttrs("offset", "stop-color", "stop-opacity").OnElements("stop")
		policy.AllowAttrs("clipPathUnits").OnElements("clipPath")

		svgPolicy = policy
	})
	return svgPolicy
}
