package components

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathCompleter_SingleMatch(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "outputs"), 0755)
	os.Mkdir(filepath.Join(dir, "scripts"), 0755)

	c := NewPathCompleter(true)
	result := c.Next(filepath.Join(dir, "out"))

	if !strings.Contains(result, "outputs") {
		t.Errorf("expected completion to contain 'outputs', got: %s", result)
	}
	if !strings.HasSuffix(result, string(filepath.Separator)) {
		t.Errorf("expected trailing separator, got: %s", result)
	}
}

func TestPathCompleter_CyclesThroughMatches(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "alpha"), 0755)
	os.Mkdir(filepath.Join(dir, "beta"), 0755)
	os.Mkdir(filepath.Join(dir, "gamma"), 0755)

	c := NewPathCompleter(true)

	// First Tab gets the first match, later Tabs cycle
	r1 := c.Next(dir + string(filepath.Separator))
	r2 := c.Next(dir + string(filepath.Separator))
	r3 := c.Next(dir + string(filepath.Separator))

	results := []string{r1, r2, r3}

	if r1 == r2 || r2 == r3 {
		t.Errorf("expected cycling through matches, got: %v", results)
	}

	for _, r := range results {
		if !strings.HasPrefix(r, dir) {
			t.Errorf("expected result to start with %s, got: %s", dir, r)
		}
	}
}

func TestPathCompleter_ResetStopsCycling(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "alpha"), 0755)
	os.Mkdir(filepath.Join(dir, "beta"), 0755)

	c := NewPathCompleter(true)

	r1 := c.Next(dir + string(filepath.Separator))
	c.Reset()
	r2 := c.Next(dir + string(filepath.Separator))

	// After reset, cycling starts from the beginning again
	if r1 != r2 {
		t.Errorf("expected same result after reset, got: %s vs %s", r1, r2)
	}
}

func TestPathCompleter_DirsOnlySkipsFiles(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "subdir"), 0755)
	os.WriteFile(filepath.Join(dir, "data.csv"), []byte("a,b\n"), 0644)

	c := NewPathCompleter(true)
	result := c.Next(dir + string(filepath.Separator))

	if !strings.Contains(result, "subdir") {
		t.Errorf("expected dir match 'subdir', got: %s", result)
	}
	if strings.Contains(result, "data.csv") {
		t.Errorf("expected files to be skipped, got: %s", result)
	}
}

func TestPathCompleter_IncludesFilesWhenAllowed(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "sales.csv"), []byte("a,b\n"), 0644)

	c := NewPathCompleter(false)
	result := c.Next(filepath.Join(dir, "sal"))

	if !strings.Contains(result, "sales.csv") {
		t.Errorf("expected file match 'sales.csv', got: %s", result)
	}
}

func TestPathCompleter_EmptyDir(t *testing.T) {
	dir := t.TempDir()

	c := NewPathCompleter(true)
	result := c.Next(dir + string(filepath.Separator))

	// No entries, input comes back unchanged
	if result != dir+string(filepath.Separator) {
		t.Errorf("expected unchanged input for empty dir, got: %s", result)
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input          string
		expectedParent string
		expectedPrefix string
	}{
		{"", ".", ""},
		{".", ".", ""},
		{"my", ".", "my"},
	}

	for _, tt := range tests {
		parent, prefix := splitPath(tt.input)
		if parent != tt.expectedParent || prefix != tt.expectedPrefix {
			t.Errorf("splitPath(%q) = (%q, %q), want (%q, %q)",
				tt.input, parent, prefix, tt.expectedParent, tt.expectedPrefix)
		}
	}
}
