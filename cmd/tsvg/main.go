// Command tsvg previews SVG templates embedded in source files.
package main

import (
	"fmt"
	"os"

	"github.com/opencode-ai/tsvg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
