// Package cli provides snippet library commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/tsvg/internal/snippets"
)

var (
	snippetRenderSet []string
	snippetInsertTo  string
	snippetInsertVar string
)

func init() {
	rootCmd.AddCommand(snippetCmd)
	snippetCmd.AddCommand(snippetListCmd)
	snippetCmd.AddCommand(snippetShowCmd)
	snippetCmd.AddCommand(snippetRenderCmd)
	snippetCmd.AddCommand(snippetInsertCmd)

	snippetRenderCmd.Flags().StringArrayVar(&snippetRenderSet, "set", nil, "variable value as name=value (repeatable)")

	snippetInsertCmd.Flags().StringVar(&snippetInsertTo, "into", "", "append to this file instead of printing")
	snippetInsertCmd.Flags().StringVar(&snippetInsertVar, "const", "", "wrap the template in a const declaration with this name")
}

var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Work with SVG snippets",
	Long: `Snippets are reusable SVG templates. They are loaded from .tsvg/snippets in
the current directory, then ~/.config/tsvg/snippets, then the built-in set.`,
}

var snippetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snippets",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadSnippets()
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if IsJSONLOutput() {
				items := make([]any, len(list))
				for i := range list {
					items[i] = list[i]
				}
				return WriteOutput(os.Stdout, items)
			}
			return WriteOutput(os.Stdout, list)
		}

		if len(list) == 0 {
			fmt.Println("No snippets found.")
			return nil
		}
		return writeSnippetTable(os.Stdout, list)
	},
}

var snippetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := findSnippet(args[0])
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, snippet)
		}
		return writeSnippetDetail(os.Stdout, snippet)
	},
}

var snippetRenderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Render a snippet to SVG",
	Example: `  tsvg snippet render circle
  tsvg snippet render badge --set label=beta --set fill=#222`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := findSnippet(args[0])
		if err != nil {
			return err
		}
		vars, err := parseValues(snippetRenderSet)
		if err != nil {
			return err
		}

		rendered, err := snippets.Render(snippet, vars)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"name": snippet.Name,
				"svg":  rendered,
			})
		}
		fmt.Println(rendered)
		return nil
	},
}

var snippetInsertCmd = &cobra.Command{
	Use:   "insert <name>",
	Short: "Print a snippet as a marked template",
	Long:  "Print a snippet as a /*svg*/ template literal, or append it to a source file.",
	Example: `  tsvg snippet insert circle
  tsvg snippet insert badge --const badgeIcon --into src/icons.ts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := findSnippet(args[0])
		if err != nil {
			return err
		}

		text := insertText(snippet, snippetInsertVar)
		if snippetInsertTo == "" {
			fmt.Println(text)
			return nil
		}

		if _, err := os.Stat(snippetInsertTo); err == nil && !SkipConfirmation() {
			if !confirm(fmt.Sprintf("Append snippet '%s' to %s?", snippet.Name, snippetInsertTo)) {
				fmt.Fprintln(os.Stderr, "Cancelled.")
				return nil
			}
		}
		if err := appendToFile(snippetInsertTo, text); err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"inserted": true,
				"name":     snippet.Name,
				"file":     snippetInsertTo,
			})
		}
		fmt.Printf("Appended snippet '%s' to %s\n", snippet.Name, snippetInsertTo)
		return nil
	},
}

func loadSnippets() ([]*snippets.Snippet, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	list, err := snippets.LoadFromSearchPaths(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to load snippets: %w", err)
	}
	return list, nil
}

func findSnippet(name string) (*snippets.Snippet, error) {
	list, err := loadSnippets()
	if err != nil {
		return nil, err
	}
	snippet, err := snippets.Find(list, name)
	if errors.Is(err, snippets.ErrSnippetNotFound) {
		return nil, &PreflightError{
			Message:  fmt.Sprintf("Snippet '%s' not found", name),
			NextStep: "tsvg snippet list",
		}
	}
	return snippet, err
}

func writeSnippetTable(out io.Writer, list []*snippets.Snippet) error {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		names := make([]string, 0, len(s.Variables))
		for _, v := range s.Variables {
			names = append(names, v.Name)
		}
		rows = append(rows, []string{
			s.Name,
			strings.Join(names, ","),
			s.Source,
			s.Description,
		})
	}
	return writeTable(out, []string{"NAME", "VARIABLES", "SOURCE", "DESCRIPTION"}, rows)
}

func writeSnippetDetail(out io.Writer, s *snippets.Snippet) error {
	fmt.Fprintf(out, "Name:        %s\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", s.Description)
	}
	fmt.Fprintf(out, "Source:      %s\n", s.Source)
	if len(s.Tags) > 0 {
		fmt.Fprintf(out, "Tags:        %s\n", strings.Join(s.Tags, ", "))
	}

	if len(s.Variables) > 0 {
		fmt.Fprintln(out)
		rows := make([][]string, 0, len(s.Variables))
		for _, v := range s.Variables {
			rows = append(rows, []string{v.Name, v.Default, formatRequired(v.Required), v.Description})
		}
		if err := writeTable(out, []string{"VARIABLE", "DEFAULT", "", "DESCRIPTION"}, rows); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.TrimRight(s.Body, "\n"))
	return nil
}

// insertText is the marked template, optionally as a const declaration.
func insertText(s *snippets.Snippet, constName string) string {
	marked := snippets.Marked(s)
	if constName == "" {
		return marked
	}
	return fmt.Sprintf("const %s = %s;", constName, marked)
}

func appendToFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		text = "\n" + text
	}
	if _, err := f.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
