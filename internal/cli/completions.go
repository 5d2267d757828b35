package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

// cleaningStrategies contains valid cleaning strategies for shell completion.
var cleaningStrategies = []string{"auto", "drop", "mean", "median", "mode", "forward_fill"}

// correlationMethods contains valid correlation methods for shell completion.
var correlationMethods = []string{"pearson", "spearman", "kendall"}

// outlierMethods contains valid outlier detection methods for shell completion.
var outlierMethods = []string{"iqr", "zscore"}

// completeTierNames provides shell completion for tier flag values.
func completeTierNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, tier := range autoinsight.Tiers() {
		if strings.HasPrefix(tier.String(), toComplete) {
			matches = append(matches, tier.String())
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeStrategyNames provides shell completion for cleaning strategy flag values.
func completeStrategyNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(cleaningStrategies, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeCorrelationMethods provides shell completion for correlation method flag values.
func completeCorrelationMethods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(correlationMethods, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeOutlierMethods provides shell completion for outlier method flag values.
func completeOutlierMethods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(outlierMethods, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDataFiles provides shell completion for the input file argument,
// filtering to the supported data file extensions.
func completeDataFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Cobra expects extensions without the leading dot
	exts := make([]string, 0, len(autoinsight.SupportedExtensions()))
	for _, ext := range autoinsight.SupportedExtensions() {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	return exts, cobra.ShellCompDirectiveFilterFileExt
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func prefixMatches(values []string, toComplete string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, toComplete) {
			matches = append(matches, v)
		}
	}
	return matches
}

// registerAnalyzeCompletions wires completion functions to the analyze
// command's argument and enum-valued flags.
func registerAnalyzeCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completeDataFiles
	_ = cmd.RegisterFlagCompletionFunc("tier", completeTierNames)
	_ = cmd.RegisterFlagCompletionFunc("strategy", completeStrategyNames)
	_ = cmd.RegisterFlagCompletionFunc("corr-method", completeCorrelationMethods)
	_ = cmd.RegisterFlagCompletionFunc("outliers", completeOutlierMethods)
}

// registerInspectCompletions wires completion functions to the inspect command.
func registerInspectCompletions(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completeDataFiles
	_ = cmd.RegisterFlagCompletionFunc("tier", completeTierNames)
}
