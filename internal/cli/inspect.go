package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/imgpick/internal/checksum"
	"github.com/vvka-141/imgpick/internal/files/filesystem"
	"github.com/vvka-141/imgpick/internal/report"
	"github.com/vvka-141/imgpick/internal/services"
	"github.com/vvka-141/imgpick/internal/table"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <table>",
	Short: "Show how a table will be read",
	Long: `Inspect prints the detected delimiter, the header row and the number of
data rows of a table, and warns about headers that only differ in case or
surrounding spaces (the first of them wins when matching a column).

With --column, the column is resolved and its distinct filenames counted.

Examples:
  imgpick inspect shortlist.csv
  imgpick inspect shortlist.csv --column image --format yaml`,
	Args:              RequireTablePath,
	ValidArgsFunction: completeTableFiles,
	RunE:              runInspect,
}

type inspectFlagValues struct {
	column, delimiter, format string
	strictQuotes              bool
}

var inspectFlags inspectFlagValues

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFlags.column, "column", "c", "",
		"Also resolve this column and count its filenames")
	inspectCmd.Flags().StringVar(&inspectFlags.delimiter, "delimiter", "",
		"Cell separator: "+strings.Join(table.DelimiterNames(), "|")+" (default auto)")
	inspectCmd.Flags().StringVar(&inspectFlags.format, "format", "text",
		"Output format: "+strings.Join(report.Formats(), "|"))
	inspectCmd.Flags().BoolVar(&inspectFlags.strictQuotes, "strict-quotes", false,
		"Reject stray double quotes inside cells")

	_ = inspectCmd.RegisterFlagCompletionFunc("delimiter", completeDelimiters)
	_ = inspectCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(inspectFlags.format)
	if err != nil {
		return err
	}

	delimiter := rune(0)
	if inspectFlags.delimiter != "" {
		d, _, err := table.ParseDelimiter(inspectFlags.delimiter)
		if err != nil {
			return fmt.Errorf("invalid argument %q for \"--delimiter\" flag: %v", inspectFlags.delimiter, err)
		}
		delimiter = d
	}

	resolver := services.NewResolutionService(filesystem.NewOSFileSystem(), checksum.New(), imgpick.NopObserver{})
	summary, err := resolver.Inspect(args[0], inspectFlags.column, table.Options{
		Delimiter:    delimiter,
		StrictQuotes: inspectFlags.strictQuotes,
	})
	if err != nil {
		return err
	}

	if format == report.FormatText {
		return writeSummaryText(cmd.OutOrStdout(), summary)
	}
	return report.Encode(cmd.OutOrStdout(), summary, format)
}

func writeSummaryText(w io.Writer, s services.TableSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Delimiter: %s\n", s.Delimiter)
	fmt.Fprintf(&b, "Rows:      %d\n", s.Rows)
	fmt.Fprintf(&b, "Headers:   %d\n", len(s.Headers))
	for i, h := range s.Headers {
		fmt.Fprintf(&b, "  %2d  %s\n", i+1, h)
	}

	if len(s.Collisions) > 0 {
		keys := make([]string, 0, len(s.Collisions))
		for k := range s.Collisions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\nAmbiguous headers (first one is used):\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, strings.Join(s.Collisions[k], ", "))
		}
	}

	if s.Column != "" {
		fmt.Fprintf(&b, "\nColumn %q: %d filename(s), %d empty cell(s), %d duplicate(s)\n",
			s.Column, s.Filenames, s.Empty, s.Duplicate)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
