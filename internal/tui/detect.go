package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for autoinsight.
type Mode int

const (
	// ModeNonInteractive is used for CI pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// EnvNonInteractive disables every prompt and wizard when set to "1".
const EnvNonInteractive = "AUTOINSIGHT_NON_INTERACTIVE"

// DetectMode determines whether autoinsight should run in interactive or
// non-interactive mode.
//
// Returns ModeNonInteractive if:
//   - AUTOINSIGHT_NON_INTERACTIVE=1 is set
//   - CI is set (common CI convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdin or stdout is not a terminal (piped input, CI)
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	// Environment overrides come first
	if os.Getenv(EnvNonInteractive) == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}

	// stdout matters too; wizards render there
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in
// interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
