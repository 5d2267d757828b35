package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/autoinsight-io/autoinsight/internal/config"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// resetInitFlags restores the init flags to their defaults and clears
// the Changed markers between tests.
func resetInitFlags() {
	initCmd.Flags().Visit(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestInitCmd_ArgsValidation_TooMany(t *testing.T) {
	err := initCmd.Args(initCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
	exitCode := autoinsight.ExitCodeForError(err)
	if exitCode != autoinsight.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", autoinsight.ExitUsageError, exitCode, err)
	}
}

// TestRunInit_DefaultsToFreeTier checks that scripted sessions get the
// free tier without a picker.
func TestRunInit_DefaultsToFreeTier(t *testing.T) {
	resetInitFlags()
	targetDir := t.TempDir()

	if err := runInit(initCmd, []string{targetDir}); err != nil {
		t.Fatalf("runInit() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(targetDir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("Expected %s to exist: %v", config.ConfigFileName, err)
	}
	if !strings.Contains(string(data), "tier: free") {
		t.Errorf("Expected free tier in config, got:\n%s", data)
	}
}

func TestRunInit_TierFlag(t *testing.T) {
	resetInitFlags()
	targetDir := t.TempDir()
	if err := initCmd.Flags().Set("tier", "business"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}

	if err := runInit(initCmd, []string{targetDir}); err != nil {
		t.Fatalf("runInit() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(targetDir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("Expected %s to exist: %v", config.ConfigFileName, err)
	}
	if !strings.Contains(string(data), "tier: business") {
		t.Errorf("Expected business tier in config, got:\n%s", data)
	}
}

func TestRunInit_InvalidTierFlag(t *testing.T) {
	resetInitFlags()
	targetDir := t.TempDir()
	if err := initCmd.Flags().Set("tier", "platinum"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}

	err := runInit(initCmd, []string{targetDir})
	if err == nil {
		t.Fatal("Expected error for unknown tier")
	}
	if !errors.Is(err, autoinsight.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

// TestRunInit_ExistingConfigFails checks that a scripted re-init without
// --force refuses to touch the existing config.
func TestRunInit_ExistingConfigFails(t *testing.T) {
	resetInitFlags()
	targetDir := t.TempDir()

	if err := runInit(initCmd, []string{targetDir}); err != nil {
		t.Fatalf("first runInit() failed: %v", err)
	}

	err := runInit(initCmd, []string{targetDir})
	if err == nil {
		t.Fatal("Expected error for existing config")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected error about existing config, got: %v", err)
	}
}

func TestRunInit_ForceReplaces(t *testing.T) {
	resetInitFlags()
	targetDir := t.TempDir()

	if err := runInit(initCmd, []string{targetDir}); err != nil {
		t.Fatalf("first runInit() failed: %v", err)
	}

	if err := initCmd.Flags().Set("tier", "pro"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}
	if err := initCmd.Flags().Set("force", "true"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}

	if err := runInit(initCmd, []string{targetDir}); err != nil {
		t.Fatalf("forced runInit() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(targetDir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("Expected %s to exist: %v", config.ConfigFileName, err)
	}
	if !strings.Contains(string(data), "tier: pro") {
		t.Errorf("Expected pro tier after forced re-init, got:\n%s", data)
	}
}

// TestRunInit_CurrentDirectory checks the no-argument form.
func TestRunInit_CurrentDirectory(t *testing.T) {
	resetInitFlags()
	t.Chdir(t.TempDir())

	if err := runInit(initCmd, []string{}); err != nil {
		t.Fatalf("runInit() failed: %v", err)
	}
	if _, err := os.Stat(config.ConfigFileName); err != nil {
		t.Errorf("Expected %s in current directory: %v", config.ConfigFileName, err)
	}
}
