package tui

import (
	"fmt"
	"io"
	"os"
)

// PromptContinue asks a yes/no question and returns the answer. Empty
// input counts as yes. Non-interactive runs always answer yes so that
// scripted flows never block.
func PromptContinue(message string) bool {
	if !IsInteractive() {
		return true
	}

	fmt.Printf("%s [Y/n]: ", message)

	var response string
	fmt.Scanln(&response)

	return response == "" || response == "y" || response == "Y"
}

// ProgressDisplay prints stage progress for the long-running pipeline
// steps. Interactive runs get glyph prefixes, everything else plain lines.
type ProgressDisplay struct {
	out         io.Writer
	interactive bool
}

// NewProgressDisplay returns a display writing to stdout.
func NewProgressDisplay() *ProgressDisplay {
	return &ProgressDisplay{out: os.Stdout, interactive: IsInteractive()}
}

// Start announces the beginning of a stage.
func (p *ProgressDisplay) Start(message string) {
	if !p.interactive {
		fmt.Fprintln(p.out, message)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", SymbolSpinner, message)
}

// Success reports a completed stage.
func (p *ProgressDisplay) Success(message string) {
	fmt.Fprintf(p.out, "%s %s\n", SymbolCheck, message)
}

// Error reports a failed stage.
func (p *ProgressDisplay) Error(message string) {
	fmt.Fprintf(p.out, "%s %s\n", SymbolCross, message)
}
