package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/imgpick/internal/checksum"
	"github.com/vvka-141/imgpick/internal/files/filesystem"
	"github.com/vvka-141/imgpick/internal/logging"
	"github.com/vvka-141/imgpick/internal/progress"
	"github.com/vvka-141/imgpick/internal/report"
	"github.com/vvka-141/imgpick/internal/services"
	"github.com/vvka-141/imgpick/internal/table"
	"github.com/vvka-141/imgpick/internal/tui"
	"github.com/vvka-141/imgpick/internal/tui/wizards"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

var copyCmd = &cobra.Command{
	Use:   "copy [table]",
	Short: "Copy the images listed in a table column",
	Long: `Copy reads one column of a CSV/TSV table and copies every listed image
that exists in the source folder into the destination folder.

The delimiter is detected from the header line (tab, then semicolon, then
comma). The column is matched case-insensitively. Cells may hold bare names
or full paths; only the final path component is looked up. Existing files in
the destination are overwritten.

Inputs, highest precedence first:
  1. Flags (and the table argument)
  2. IMGPICK_TABLE, IMGPICK_SOURCE, IMGPICK_DEST, IMGPICK_COLUMN,
     IMGPICK_DELIMITER (a .env file in the working directory is loaded)
  3. imgpick.yaml in the working directory, or --config
When an input is still missing and the terminal is interactive, a form asks
for it. Set IMGPICK_NON_INTERACTIVE=1 to fail instead.

Examples:
  # Copy the images named in the "image" column
  imgpick copy shortlist.csv -s ./photos -d ./selected -c image

  # See what would be copied, as JSON
  imgpick copy shortlist.csv -s ./photos -d ./selected -c image --dry-run --format json

  # Keep going past unreadable files and save a report
  imgpick copy shortlist.csv -s ./photos -d ./selected -c image \
    --keep-going --verify --report run.yaml`,
	Args:              OptionalTablePath,
	ValidArgsFunction: completeTableFiles,
	RunE:              runCopy,
}

type copyFlagValues struct {
	source, dest, column, delimiter string
	keepGoing, dryRun, verify       bool
	strictQuotes                    bool
	reportPath, format              string
	progress, interactive           bool
	configPath                      string
	retries                         int
	timeout                         time.Duration
}

var copyFlags copyFlagValues

// Seams for tests; the real implementations need a terminal.
var (
	detectMode     = tui.DetectMode
	runInputWizard = wizards.RunInputWizard
	runResultView  = wizards.RunResultView
)

func init() {
	rootCmd.AddCommand(copyCmd)

	copyCmd.Flags().StringVarP(&copyFlags.source, "source", "s", "",
		"Folder holding the images (or $"+EnvSource+")")
	copyCmd.Flags().StringVarP(&copyFlags.dest, "dest", "d", "",
		"Folder receiving the copies (or $"+EnvDest+")")
	copyCmd.Flags().StringVarP(&copyFlags.column, "column", "c", "",
		"Column holding the filenames, case-insensitive (or $"+EnvColumn+")")
	copyCmd.Flags().StringVar(&copyFlags.delimiter, "delimiter", "",
		"Cell separator: "+strings.Join(table.DelimiterNames(), "|")+" (default auto)")

	copyCmd.Flags().BoolVar(&copyFlags.keepGoing, "keep-going", false,
		"Record per-file copy failures and continue instead of stopping at the first one")
	copyCmd.Flags().BoolVar(&copyFlags.dryRun, "dry-run", false,
		"Check which images exist without copying anything")
	copyCmd.Flags().BoolVar(&copyFlags.verify, "verify", false,
		"Compare SHA-256 of source and destination after every copy")
	copyCmd.Flags().BoolVar(&copyFlags.strictQuotes, "strict-quotes", false,
		"Reject stray double quotes inside cells instead of reading them literally")
	copyCmd.Flags().IntVar(&copyFlags.retries, "retries", 0,
		"Retry a copy this many times when it fails with a transient I/O error\n"+
			"(busy device, stale network handle)")

	copyCmd.Flags().StringVar(&copyFlags.reportPath, "report", "",
		"Also write the result to a file; format from extension (.json, .yaml, .yml, .txt)")
	copyCmd.Flags().StringVar(&copyFlags.format, "format", "text",
		"Output format on stdout: "+strings.Join(report.Formats(), "|"))
	copyCmd.Flags().BoolVar(&copyFlags.progress, "progress", false,
		"Show a progress bar on stderr")
	copyCmd.Flags().BoolVarP(&copyFlags.interactive, "interactive", "i", false,
		"Always open the input form, pre-filled with the known values")
	copyCmd.Flags().StringVar(&copyFlags.configPath, "config", "",
		"Project file to read instead of ./"+imgpick.ConfigFileName)

	// Timeout flag - protection against hung network mounts
	copyCmd.Flags().DurationVar(&copyFlags.timeout, "timeout", imgpick.DefaultTimeout,
		"Abort the batch after this long\n"+
			"Examples: 90s, 10m, 1h")

	_ = copyCmd.RegisterFlagCompletionFunc("delimiter", completeDelimiters)
	_ = copyCmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = copyCmd.RegisterFlagCompletionFunc("source", completeDirectories)
	_ = copyCmd.RegisterFlagCompletionFunc("dest", completeDirectories)
}

// copySettings is everything runCopy needs once flags, environment and
// imgpick.yaml have been merged.
type copySettings struct {
	Request    imgpick.Request
	ReportPath string
	Format     report.Format
	Timeout    time.Duration
}

// buildCopySettings merges flags, environment and project config.
// It does not check that the inputs are complete; the form may still fill them.
func buildCopySettings(cmd *cobra.Command, args []string) (copySettings, error) {
	format, err := report.ParseFormat(copyFlags.format)
	if err != nil {
		return copySettings{}, err
	}

	cfg, err := loadProjectConfig(copyFlags.configPath)
	if err != nil {
		return copySettings{}, err
	}

	delimiter, err := resolveDelimiter(copyFlags.delimiter, cfg)
	if err != nil {
		return copySettings{}, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, cfg, copyFlags.timeout)
	if err != nil {
		return copySettings{}, err
	}

	if copyFlags.retries < 0 {
		return copySettings{}, fmt.Errorf("invalid argument \"%d\" for \"--retries\" flag: must not be negative", copyFlags.retries)
	}

	var tableArg string
	if len(args) > 0 {
		tableArg = args[0]
	}

	reportPath := copyFlags.reportPath
	if reportPath == "" {
		reportPath = cfg.Report
	}
	if reportPath != "" {
		if _, err := report.FormatForPath(reportPath); err != nil {
			return copySettings{}, fmt.Errorf("invalid argument for \"--report\" flag: %v", err)
		}
	}

	return copySettings{
		Request: imgpick.Request{
			TablePath:      strings.TrimSpace(pickString(tableArg, EnvTable, cfg.Table)),
			SourceDir:      strings.TrimSpace(pickString(copyFlags.source, EnvSource, cfg.Source)),
			DestinationDir: strings.TrimSpace(pickString(copyFlags.dest, EnvDest, cfg.Destination)),
			Column:         pickString(copyFlags.column, EnvColumn, cfg.Column),
			Delimiter:      delimiter,
			KeepGoing:      pickBool(cmd, "keep-going", copyFlags.keepGoing, cfg.KeepGoing),
			DryRun:         copyFlags.dryRun,
			Verify:         pickBool(cmd, "verify", copyFlags.verify, cfg.Verify),
			StrictQuotes:   copyFlags.strictQuotes,
			Retries:        copyFlags.retries,
		},
		ReportPath: reportPath,
		Format:     format,
		Timeout:    timeout,
	}, nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	settings, err := buildCopySettings(cmd, args)
	if err != nil {
		return err
	}

	var bar *progress.BarObserver
	observers := progress.Multi{progress.NewLogObserver(logger)}
	if copyFlags.progress {
		bar = progress.NewBarObserver(os.Stderr, "copying")
		observers = append(observers, bar)
	}

	resolver := services.NewResolutionService(filesystem.NewOSFileSystem(), checksum.New(), observers)
	tableOpts := table.Options{Delimiter: settings.Request.Delimiter, StrictQuotes: settings.Request.StrictQuotes}

	interactive := detectMode() == tui.ModeInteractive
	if copyFlags.interactive || (interactive && settings.Request.Validate() != nil) {
		req, err := promptForInputs(settings.Request, headerLoader(resolver, tableOpts))
		if err != nil {
			return err
		}
		settings.Request = req
		interactive = true
	}

	if err := settings.Request.Validate(); err != nil {
		return err
	}

	if verbose {
		logTableLayout(logger, resolver, settings.Request.TablePath, tableOpts)
	}

	// Setup context with timeout and signal handling for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), settings.Timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, stopping after the current file...")
			cancel()
		case <-ctx.Done():
		}
	}()

	result, runErr := resolver.ResolveAndCopy(ctx, settings.Request)
	if bar != nil {
		bar.Finish()
	}

	if err := emitResult(cmd.OutOrStdout(), logger, settings, result, runErr, interactive); err != nil {
		return err
	}
	if runErr == nil && len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d files could not be copied: %w", len(result.Failed), result.Total, imgpick.ErrCopyFailure)
	}
	return runErr
}

// promptForInputs opens the input form pre-filled from req. A cancelled form
// counts as a missing input.
func promptForInputs(req imgpick.Request, loader wizards.HeaderLoader) (imgpick.Request, error) {
	result, err := runInputWizard(wizards.InputValues{
		Table:       req.TablePath,
		Source:      req.SourceDir,
		Destination: req.DestinationDir,
		Column:      req.Column,
	}, loader)
	if err != nil {
		return req, fmt.Errorf("input form failed: %w", err)
	}
	if result.Cancelled {
		return req, fmt.Errorf("input form cancelled: %w", imgpick.ErrInputMissing)
	}

	req.TablePath = result.Values.Table
	req.SourceDir = result.Values.Source
	req.DestinationDir = result.Values.Destination
	req.Column = result.Values.Column
	return req, nil
}

// headerLoader lets the form list the columns of the chosen table.
func headerLoader(resolver *services.ResolutionService, opts table.Options) wizards.HeaderLoader {
	return func(path string) ([]string, error) {
		summary, err := resolver.Inspect(path, "", opts)
		if err != nil {
			return nil, err
		}
		return summary.Headers, nil
	}
}

// logTableLayout reports the detected layout and any header collisions.
// Problems are left for the batch itself to report.
func logTableLayout(logger imgpick.Logger, resolver *services.ResolutionService, path string, opts table.Options) {
	summary, err := resolver.Inspect(path, "", opts)
	if err != nil {
		return
	}
	logger.Verbose("Table %s: %s-delimited, %d column(s), %d row(s)", path, summary.Delimiter, len(summary.Headers), summary.Rows)

	keys := make([]string, 0, len(summary.Collisions))
	for k := range summary.Collisions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		names := summary.Collisions[k]
		logger.Verbose("Headers %s all match %q; %q is used", strings.Join(names, ", "), k, names[0])
	}
}

// emitResult writes the report file and prints the result. A batch that
// failed before any filename was extracted has nothing worth printing.
func emitResult(stdout io.Writer, logger imgpick.Logger, settings copySettings, result imgpick.Result, runErr error, interactive bool) error {
	if runErr != nil && result.Total == 0 {
		return nil
	}

	if settings.ReportPath != "" {
		if err := report.WriteFile(settings.ReportPath, result); err != nil {
			if runErr != nil {
				logger.Error("%v", err)
				return nil
			}
			return err
		}
		logger.Verbose("Report written to %s", settings.ReportPath)
	}

	if runErr == nil && interactive && settings.Format == report.FormatText && wizards.ShouldShowResult(result) {
		if err := runResultView(result); err == nil {
			return nil
		}
		logger.Verbose("Result viewer unavailable, printing instead")
	}

	return report.Render(stdout, result, settings.Format)
}
