package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/imgpick/internal/report"
	"github.com/vvka-141/imgpick/internal/table"
)

// tableExtensions are offered when completing a table argument.
var tableExtensions = []string{"csv", "tsv", "txt", "tab"}

// completeDelimiters provides shell completion for --delimiter values.
func completeDelimiters(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(table.DelimiterNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeFormats provides shell completion for --format values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(report.Formats(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeTableFiles limits file completion to table extensions.
func completeTableFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return tableExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
