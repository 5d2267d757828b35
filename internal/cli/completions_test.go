package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteTierNames(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all tiers for empty input", func(t *testing.T) {
		completions, directive := completeTierNames(cmd, nil, "")
		if len(completions) != 3 {
			t.Errorf("expected 3 completions, got %d", len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeTierNames(cmd, nil, "p")
		if len(completions) != 1 || completions[0] != "pro" {
			t.Errorf("expected ['pro'], got %v", completions)
		}
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := completeTierNames(cmd, nil, "xyz")
		if len(completions) != 0 {
			t.Errorf("expected 0 completions, got %d", len(completions))
		}
	})
}

func TestCompleteStrategyNames(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all strategies for empty input", func(t *testing.T) {
		completions, directive := completeStrategyNames(cmd, nil, "")
		if len(completions) != len(cleaningStrategies) {
			t.Errorf("expected %d completions, got %d", len(cleaningStrategies), len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeStrategyNames(cmd, nil, "me")
		if len(completions) != 2 {
			t.Errorf("expected 2 completions (mean, median), got %d", len(completions))
		}
		for _, c := range completions {
			if c != "mean" && c != "median" {
				t.Errorf("unexpected completion: %s", c)
			}
		}
	})
}

func TestCompleteCorrelationMethods(t *testing.T) {
	cmd := &cobra.Command{}

	completions, directive := completeCorrelationMethods(cmd, nil, "s")
	if len(completions) != 1 || completions[0] != "spearman" {
		t.Errorf("expected ['spearman'], got %v", completions)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
	}
}

func TestCompleteOutlierMethods(t *testing.T) {
	cmd := &cobra.Command{}

	completions, _ := completeOutlierMethods(cmd, nil, "")
	if len(completions) != 2 {
		t.Errorf("expected 2 completions, got %d", len(completions))
	}
}

func TestCompleteDataFiles(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns extension filter for first arg", func(t *testing.T) {
		completions, directive := completeDataFiles(cmd, nil, "")
		if directive != cobra.ShellCompDirectiveFilterFileExt {
			t.Errorf("expected ShellCompDirectiveFilterFileExt, got %v", directive)
		}
		foundCSV := false
		for _, c := range completions {
			if c == "csv" {
				foundCSV = true
			}
			if len(c) > 0 && c[0] == '.' {
				t.Errorf("extensions must not carry the leading dot, got %q", c)
			}
		}
		if !foundCSV {
			t.Errorf("expected 'csv' in completions, got %v", completions)
		}
	})

	t.Run("returns NoFileComp when args already provided", func(t *testing.T) {
		_, directive := completeDataFiles(cmd, []string{"sales.csv"}, "")
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})
}

func TestCompleteDirectories(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns FilterDirs directive for first arg", func(t *testing.T) {
		_, directive := completeDirectories(cmd, nil, "")
		if directive != cobra.ShellCompDirectiveFilterDirs {
			t.Errorf("expected ShellCompDirectiveFilterDirs, got %v", directive)
		}
	})

	t.Run("returns NoFileComp when args already provided", func(t *testing.T) {
		_, directive := completeDirectories(cmd, []string{"./existing"}, "")
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})
}
