package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/autoinsight-io/autoinsight/internal/config"
	"github.com/autoinsight-io/autoinsight/internal/scaffold"
	"github.com/autoinsight-io/autoinsight/internal/tui"
	"github.com/autoinsight-io/autoinsight/internal/tui/components"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

var initCmd = &cobra.Command{
	Use:   "init [target_path]",
	Short: "Initialize a new autoinsight project",
	Long: `Initialize an autoinsight project in the given directory, or the
current directory when no path is provided.

The init command creates:
- autoinsight.yaml starter configuration for the chosen tier
- .env.example documenting the environment overrides
- outputs/ directory for charts and reports

Existing data files in the directory are left alone; only a present
autoinsight.yaml blocks init unless --force is given.

Examples:
  autoinsight init                     # Initialize in current directory
  autoinsight init ./myproject         # Initialize in ./myproject
  autoinsight init --tier business     # Skip the interactive tier picker`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

type initFlagValues struct {
	tier  string
	force bool
}

var initFlags initFlagValues

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initFlags.tier, "tier", "t", "",
		"Subscription tier for the starter config: free|pro|business\n"+
			"Interactive sessions get a picker when omitted")
	initCmd.Flags().BoolVar(&initFlags.force, "force", false,
		"Replace an existing autoinsight.yaml")

	initCmd.ValidArgsFunction = completeDirectories
	_ = initCmd.RegisterFlagCompletionFunc("tier", completeTierNames)
}

func runInit(cmd *cobra.Command, args []string) error {
	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}
	verbose := getVerboseFlag(cmd)

	tier, err := resolveInitTier(cmd)
	if err != nil {
		return err
	}

	// Ask before replacing a config in interactive sessions. Scripted
	// runs must pass --force; the scaffolder refuses otherwise.
	overwrite := initFlags.force
	if !overwrite && tui.IsInteractive() {
		configPath := filepath.Join(targetPath, config.ConfigFileName)
		if _, statErr := os.Stat(configPath); statErr == nil {
			if !tui.PromptContinue(fmt.Sprintf("%s already exists in '%s'. Replace it?", config.ConfigFileName, targetPath)) {
				return fmt.Errorf("init cancelled, existing %s kept", config.ConfigFileName)
			}
			overwrite = true
		}
	}

	scaffolder := scaffold.NewScaffolder(verbose)
	if err := scaffolder.CreateProject(targetPath, tier, overwrite); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	// Display file tree
	tree, err := scaffold.BuildFileTree(targetPath)
	if err != nil {
		// Non-fatal - just skip tree display
		fmt.Fprintf(os.Stderr, "\n✓ Project initialized in '%s' on the %s tier\n\n", targetPath, tier)
	} else {
		fmt.Fprintf(os.Stderr, "\n✓ Project initialized on the %s tier\n\n", tier)
		fmt.Fprintln(os.Stderr, "Created structure:")
		fmt.Fprint(os.Stderr, tree)
	}

	// Next steps
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(os.Stderr, "  autoinsight sample          # Write a demo dataset")
	fmt.Fprintln(os.Stderr, "  autoinsight analyze sample.csv")

	return nil
}

// resolveInitTier picks the tier for the starter config: the --tier flag
// when given, the interactive picker on a terminal, free otherwise.
func resolveInitTier(cmd *cobra.Command) (autoinsight.Tier, error) {
	if cmd.Flags().Changed("tier") {
		tier := autoinsight.ParseTier(initFlags.tier)
		if !tier.IsValid() {
			return "", fmt.Errorf("unknown tier %q, expected one of %v: %w", initFlags.tier, autoinsight.Tiers(), autoinsight.ErrInvalidConfig)
		}
		return tier, nil
	}

	if !tui.IsInteractive() {
		return autoinsight.TierFree, nil
	}
	return pickTier()
}

// pickTier runs the standalone tier selector and returns the choice.
func pickTier() (autoinsight.Tier, error) {
	options := make([]components.Option, 0, len(autoinsight.Tiers()))
	for _, tier := range autoinsight.Tiers() {
		desc := fmt.Sprintf("Files up to %g MB", tier.LimitMB())
		if tier.AllowsPDF() {
			desc += ", PDF reports included"
		} else {
			desc += ", no PDF reports"
		}
		options = append(options, components.Option{
			Label:       tier.String(),
			Description: desc,
			Value:       tier.String(),
		})
	}

	selector := components.NewSelector("Choose your plan", options)
	model, err := tea.NewProgram(selector).Run()
	if err != nil {
		return "", fmt.Errorf("tier picker failed: %w", err)
	}

	final := model.(components.Selector)
	if final.Cancelled() || !final.Submitted() {
		return "", fmt.Errorf("init cancelled")
	}
	return autoinsight.ParseTier(final.Value()), nil
}
