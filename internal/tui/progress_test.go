package tui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressDisplay_InteractiveUsesGlyphs(t *testing.T) {
	var buf bytes.Buffer
	p := &ProgressDisplay{out: &buf, interactive: true}

	p.Start("loading sales.csv")
	p.Success("loaded 500 rows")
	p.Error("rendering failed")

	out := buf.String()
	if !strings.Contains(out, SymbolSpinner+" loading sales.csv") {
		t.Errorf("Start output missing spinner glyph: %q", out)
	}
	if !strings.Contains(out, SymbolCheck+" loaded 500 rows") {
		t.Errorf("Success output missing check glyph: %q", out)
	}
	if !strings.Contains(out, SymbolCross+" rendering failed") {
		t.Errorf("Error output missing cross glyph: %q", out)
	}
}

func TestProgressDisplay_NonInteractiveStartIsPlain(t *testing.T) {
	var buf bytes.Buffer
	p := &ProgressDisplay{out: &buf, interactive: false}

	p.Start("loading sales.csv")

	if got := buf.String(); got != "loading sales.csv\n" {
		t.Errorf("Start output = %q, want plain line", got)
	}
}

func TestNewProgressDisplay_NonInteractiveInTests(t *testing.T) {
	t.Setenv(EnvNonInteractive, "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	p := NewProgressDisplay()
	if p.interactive {
		t.Error("NewProgressDisplay() interactive = true in test environment")
	}
}

func TestPromptContinue_NonInteractiveAnswersYes(t *testing.T) {
	t.Setenv(EnvNonInteractive, "1")

	if !PromptContinue("Overwrite existing configuration?") {
		t.Error("PromptContinue() = false in non-interactive mode, want true")
	}
}
