// Package cli provides helpers for interactive mode detection.
package cli

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
)

// IsNonInteractive reports whether prompts should be skipped and defaults used.
func IsNonInteractive() bool {
	if nonInteractive {
		return true
	}
	if _, ok := os.LookupEnv("TSVG_NON_INTERACTIVE"); ok {
		return true
	}
	return !hasTTY()
}

// IsInteractive reports whether the session can prompt for user input.
func IsInteractive() bool {
	return !IsNonInteractive()
}

// SkipConfirmation reports whether confirmation prompts should be bypassed.
func SkipConfirmation() bool {
	return yesFlag || IsNonInteractive()
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func confirm(message string) bool {
	answer := false
	prompt := &survey.Confirm{Message: message}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false
	}
	return answer
}

// promptValues asks for every variable in order, offering the current
// value as the default.
func promptValues(variables []string, current map[string]string) (map[string]string, error) {
	answers := make(map[string]string, len(current))
	for k, v := range current {
		answers[k] = v
	}

	for _, name := range variables {
		answer := current[name]
		prompt := &survey.Input{
			Message: name + ":",
			Default: current[name],
		}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return nil, err
		}
		answers[name] = answer
	}
	return answers, nil
}
