package scaffold_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autoinsight-io/autoinsight/internal/config"
	"github.com/autoinsight-io/autoinsight/internal/scaffold"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// TestProjectRoundTrip initializes a project for every tier and verifies the
// starter config loads and validates through the config package, so a fresh
// init always yields a runnable project.
func TestProjectRoundTrip(t *testing.T) {
	for _, tier := range autoinsight.Tiers() {
		t.Run(tier.String(), func(t *testing.T) {
			targetDir := filepath.Join(t.TempDir(), "project")

			scaffolder := scaffold.NewScaffolder(testing.Verbose())
			if err := scaffolder.CreateProject(targetDir, tier, false); err != nil {
				t.Fatalf("CreateProject failed: %v", err)
			}

			cfg, err := config.Load(targetDir)
			if err != nil {
				t.Fatalf("Starter config failed to load: %v", err)
			}

			if cfg.Tier != tier.String() {
				t.Errorf("Expected starter tier %q, got %q", tier, cfg.Tier)
			}
			if cfg.Output == "" {
				t.Error("Expected starter config to set an output directory")
			}

			if err := cfg.Validate(); err != nil {
				t.Errorf("Starter config failed validation: %v", err)
			}
		})
	}
}

// TestProjectRoundTrip_Reinit verifies that init after init is safe: the
// second run fails without force and succeeds with it.
func TestProjectRoundTrip_Reinit(t *testing.T) {
	targetDir := filepath.Join(t.TempDir(), "project")
	scaffolder := scaffold.NewScaffolder(false)

	if err := scaffolder.CreateProject(targetDir, autoinsight.TierFree, false); err != nil {
		t.Fatalf("First init failed: %v", err)
	}

	if err := scaffolder.CreateProject(targetDir, autoinsight.TierPro, false); err == nil {
		t.Fatal("Second init without force should fail")
	}

	if err := scaffolder.CreateProject(targetDir, autoinsight.TierPro, true); err != nil {
		t.Fatalf("Second init with force failed: %v", err)
	}

	cfg, err := config.Load(targetDir)
	if err != nil {
		t.Fatalf("Config failed to load after re-init: %v", err)
	}
	if cfg.Tier != "pro" {
		t.Errorf("Expected re-init to switch tier to pro, got %q", cfg.Tier)
	}
}

// TestProjectFileTreeAfterInit verifies the tree rendering that init prints
// covers everything the scaffolder wrote.
func TestProjectFileTreeAfterInit(t *testing.T) {
	targetDir := filepath.Join(t.TempDir(), "project")

	scaffolder := scaffold.NewScaffolder(false)
	if err := scaffolder.CreateProject(targetDir, autoinsight.TierPro, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	tree, err := scaffold.BuildFileTree(targetDir)
	if err != nil {
		t.Fatalf("BuildFileTree failed: %v", err)
	}

	entries, err := os.ReadDir(targetDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		if !strings.Contains(tree, name) {
			t.Errorf("Expected tree to list %q, got:\n%s", name, tree)
		}
	}
}
