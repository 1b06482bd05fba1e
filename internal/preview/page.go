package preview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sort"
)

//go:embed assets/page.html.tmpl
var assetsFS embed.FS

var pageTemplate = template.Must(template.ParseFS(assetsFS, "assets/page.html.tmpl"))

// Page is the data behind the HTML preview.
type Page struct {
	Title   string
	Payload Payload
	// Values seed the inputs; defaults fill any gap.
	Values map[string]string
	// SocketPath is the websocket endpoint that pushes updates. Empty for a
	// static page.
	SocketPath string
}

// Title formats the preview title for a file and zero-based marker line.
func Title(file string, line int) string {
	name := filepath.Base(file)
	if file == "" || file == "-" {
		name = "stdin"
	}
	return fmt.Sprintf("SVG Preview: %s:%d", name, line+1)
}

type pageView struct {
	Title      string
	Payload    Payload
	Values     map[string]string
	SocketPath string
	InitialSVG template.HTML
	// Seeded lists the keys the caller set; the page keeps them over
	// defaults when updates arrive.
	Seeded []string
}

// WritePage renders the preview page. The initial drawing is sanitized;
// later redraws happen in the browser.
func WritePage(w io.Writer, page Page) error {
	payload := page.Payload
	if payload.Variables == nil {
		payload.Variables = []string{}
	}
	if payload.DefaultValues == nil {
		payload.DefaultValues = map[string]string{}
	}

	values := Values(payload, page.Values)
	view := pageView{
		Title:      page.Title,
		Payload:    payload,
		Values:     values,
		SocketPath: page.SocketPath,
		InitialSVG: template.HTML(SanitizeSVG(Render(payload, page.Values))),
		Seeded:     seededKeys(page.Values),
	}

	if err := pageTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render preview page: %w", err)
	}
	return nil
}

func seededKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
