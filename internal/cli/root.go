package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sparkify/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "sparkify",
	Short: "Load song catalog and listening activity into a PostgreSQL star schema",
	Long: `sparkify builds the songplays star schema in PostgreSQL and fills it from
two trees of JSON files: the song catalog (one song per file) and the
activity logs (one listening event per line).

Typical session:
  sparkify create-tables     # drop and recreate the analytics database
  sparkify etl               # load ./data/song_data then ./data/log_data

Re-running etl over the same files converges the dimension tables (users keep
their latest level, artists their latest location, time is unchanged). Songs
already loaded are reported as statement errors and songplays rows are
appended again, so run create-tables first for a clean reload.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - User denied the database overwrite
  12 - Database connection failed
  13 - SQL execution failed
  14 - Input file could not be parsed
  15 - Load finished with skipped files or statements`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for sparkify")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("log-format", logging.FormatText,
		"Log output format: text (human readable) or json (one object per line)")
	rootCmd.PersistentFlags().String("config-dir", ".",
		"Directory holding sparkify.yaml and .env")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", completeLogFormats)
	_ = rootCmd.RegisterFlagCompletionFunc("config-dir", completeDirectories)
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

func getLogFormatFlag(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil || format == "" {
		return logging.FormatText
	}
	return format
}

func getConfigDirFlag(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil || dir == "" {
		return "."
	}
	return dir
}
