package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/detect"
	"github.com/opencode-ai/tsvg/internal/preview"
)

const iconsSource = "const a = 1;\n" +
	"const icon = /*svg*/ `<circle r=\"${r}\" fill=\"${fill}\" />`;\n" +
	"const box = /*svg*/ `<rect width=\"${w}\" />`;\n"

func TestParseValues(t *testing.T) {
	values, err := parseValues([]string{"fill=red", "r=20", "label=a=b", "fill=blue", "empty="})
	if err != nil {
		t.Fatalf("parseValues: %v", err)
	}
	if values["fill"] != "blue" {
		t.Fatalf("expected later value to win, got %q", values["fill"])
	}
	if values["label"] != "a=b" {
		t.Fatalf("expected value to keep '=', got %q", values["label"])
	}
	if v, ok := values["empty"]; !ok || v != "" {
		t.Fatalf("expected empty value to be kept, got %q (%v)", v, ok)
	}

	for _, bad := range []string{"fill", "=red", " =x"} {
		if _, err := parseValues([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func newTargetCommand(flags *targetFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd, true)
	return cmd
}

func TestTargetFlags(t *testing.T) {
	var flags targetFlags
	cmd := newTargetCommand(&flags)

	target, err := flags.target(cmd)
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if target.Line != nil || target.Cursor != nil {
		t.Fatalf("expected empty target, got %+v", target)
	}

	if err := cmd.Flags().Set("line", "3"); err != nil {
		t.Fatalf("set line: %v", err)
	}
	if err := cmd.Flags().Set("cursor", "1"); err != nil {
		t.Fatalf("set cursor: %v", err)
	}
	target, err = flags.target(cmd)
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if target.Line == nil || *target.Line != 2 {
		t.Fatalf("expected zero-based line 2, got %v", target.Line)
	}
	if target.Cursor == nil || *target.Cursor != 0 {
		t.Fatalf("expected zero-based cursor 0, got %v", target.Cursor)
	}
}

func TestTargetFlagsRejectsZero(t *testing.T) {
	var flags targetFlags
	cmd := newTargetCommand(&flags)
	if err := cmd.Flags().Set("line", "0"); err != nil {
		t.Fatalf("set line: %v", err)
	}
	if _, err := flags.target(cmd); err == nil {
		t.Fatalf("expected error for --line 0")
	}
}

func TestReadDocumentFromStdin(t *testing.T) {
	doc, err := readDocument("-", strings.NewReader(iconsSource))
	if err != nil {
		t.Fatalf("readDocument: %v", err)
	}
	if doc.Text() != iconsSource {
		t.Fatalf("unexpected text %q", doc.Text())
	}

	if _, err := readDocument("", nil); !errors.Is(err, preview.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if _, err := readDocument(t.TempDir()+"/missing.ts", nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSelectTemplate(t *testing.T) {
	doc := detect.NewTextDocument(iconsSource)

	match, err := selectTemplate(doc, preview.Target{Line: preview.LineOf(2)}, "icons.ts")
	if err != nil {
		t.Fatalf("selectTemplate: %v", err)
	}
	if match.Line != 2 {
		t.Fatalf("expected line 2, got %d", match.Line)
	}

	_, err = selectTemplate(detect.NewTextDocument("const a = 1;\n"), preview.Target{}, "-")
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Fatalf("expected PreflightError, got %v", err)
	}
	if !strings.Contains(preflight.Message, "stdin") {
		t.Fatalf("expected stdin in message, got %q", preflight.Message)
	}

	_, err = selectTemplate(nil, preview.Target{}, "")
	if !errors.As(err, &preflight) || preflight.Message != "No document open" {
		t.Fatalf("expected no document error, got %v", err)
	}
}

func TestAnchorLine(t *testing.T) {
	doc := detect.NewTextDocument(iconsSource)

	line, err := anchorLine(doc, preview.Target{})
	if err != nil || line != 1 {
		t.Fatalf("expected first template line 1, got %d (%v)", line, err)
	}

	line, err = anchorLine(doc, preview.Target{Cursor: preview.LineOf(2)})
	if err != nil || line != 2 {
		t.Fatalf("expected cursor template line 2, got %d (%v)", line, err)
	}

	empty := detect.NewTextDocument("const a = 1;\n")
	line, err = anchorLine(empty, preview.Target{Line: preview.LineOf(7)})
	if err != nil || line != 7 {
		t.Fatalf("expected requested line 7 without templates, got %d (%v)", line, err)
	}
	line, err = anchorLine(empty, preview.Target{})
	if err != nil || line != 0 {
		t.Fatalf("expected line 0 without templates, got %d (%v)", line, err)
	}
}

func TestPresetFile(t *testing.T) {
	if presetFile("-") != "-" {
		t.Fatalf("stdin should keep its marker")
	}
	if got := presetFile("icons.ts"); !strings.HasSuffix(got, "/icons.ts") || !strings.HasPrefix(got, "/") {
		t.Fatalf("expected absolute path, got %q", got)
	}
}

func TestMergeValues(t *testing.T) {
	merged := mergeValues(map[string]string{"a": "1", "b": "2"}, nil, map[string]string{"b": "3"})
	if merged["a"] != "1" || merged["b"] != "3" || len(merged) != 2 {
		t.Fatalf("unexpected merge: %v", merged)
	}
}

func TestPreflightErrorFormat(t *testing.T) {
	err := &PreflightError{Message: "No document open", Hint: "pass a file", NextStep: "tsvg preview <file>"}
	want := "No document open\n  hint: pass a file\n  next: tsvg preview <file>"
	if err.Error() != want {
		t.Fatalf("unexpected error text:\n%s", err.Error())
	}

	bare := &PreflightError{Message: "boom"}
	if bare.Error() != "boom" {
		t.Fatalf("expected bare message, got %q", bare.Error())
	}
}
