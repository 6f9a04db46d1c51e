package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const banner = `imgpick - copy the images a table lists`

var rootCmd = &cobra.Command{
	Use:   "imgpick",
	Short: "Copy the images named in a CSV/TSV column into another folder",
	Long: banner + `

imgpick reads one column of a delimited text table (comma, semicolon or tab,
detected from the header line), reduces every cell to its bare filename and
copies each one that exists in the source folder into the destination folder.
Filenames that are not found are reported, they are not an error.

Inputs come from flags, IMGPICK_* environment variables (.env is honoured),
an imgpick.yaml in the working directory, or an interactive form when the
terminal allows it.

Exit Codes:
  0  - Success (missing images are reported, not failed)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Missing input or invalid configuration
  11 - Table file could not be read
  12 - Column not found in the header
  13 - Malformed table
  14 - A file copy failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
