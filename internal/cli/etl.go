package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/sparkify/internal/db"
	"github.com/vvka-141/sparkify/internal/etl"
	"github.com/vvka-141/sparkify/internal/files/filesystem"
	"github.com/vvka-141/sparkify/internal/files/scanner"
	"github.com/vvka-141/sparkify/internal/logging"
	"github.com/vvka-141/sparkify/internal/records"
	"github.com/vvka-141/sparkify/internal/services"
	"github.com/vvka-141/sparkify/internal/tui"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Load song and log files into the star schema",
	Long: `Load the song catalog, then the activity logs, into the analytics database.

Phase 1 walks --song-data and upserts songs and artists, one file per
transaction. Phase 2 walks --log-data, keeps NextSong events only, and
upserts time rows, users (latest level wins) and songplays. A play is linked
to a song when title, artist name and duration all match the catalog.

A file that cannot be parsed is rolled back and skipped; a statement that
fails is rolled back alone and the rest of its file still commits. Either
makes the command exit 15 once every file has been visited.

Run create-tables first.

Examples:
  sparkify etl
  sparkify etl --song-data /mnt/data/song_data --log-data /mnt/data/log_data
  sparkify etl --log-format json -d sparkifydb`,
	Args: cobra.NoArgs,
	RunE: runETL,
}

var (
	etlConn     connectionFlags
	etlSongData string
	etlLogData  string
	etlTimeout  time.Duration
)

func init() {
	rootCmd.AddCommand(etlCmd)

	addConnectionFlags(etlCmd, &etlConn)
	etlCmd.Flags().StringVar(&etlSongData, "song-data", sparkify.DefaultSongDataPath,
		"Root of the song catalog tree (*.json, one song per file)")
	etlCmd.Flags().StringVar(&etlLogData, "log-data", sparkify.DefaultLogDataPath,
		"Root of the activity log tree (*.json, one event per line)")
	etlCmd.Flags().DurationVar(&etlTimeout, "timeout", sparkify.DefaultLoadTimeout,
		"Maximum duration for the whole load (e.g. 10m, 1h)")

	_ = etlCmd.RegisterFlagCompletionFunc("song-data", completeDirectories)
	_ = etlCmd.RegisterFlagCompletionFunc("log-data", completeDirectories)
}

// buildLoadConfig resolves connection, data roots and timeout for etl.
func buildLoadConfig(cmd *cobra.Command, verbose bool) (sparkify.LoadConfig, error) {
	configDir := getConfigDirFlag(cmd)
	projectCfg, err := loadProjectConfig(configDir)
	if err != nil {
		return sparkify.LoadConfig{}, err
	}

	resolved, err := resolveConnectionFromFlags(etlConn, projectCfg)
	if err != nil {
		return sparkify.LoadConfig{}, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, etlTimeout)
	if err != nil {
		return sparkify.LoadConfig{}, err
	}

	var songFromConfig, logFromConfig string
	if projectCfg != nil {
		songFromConfig = projectCfg.Data.SongData
		logFromConfig = projectCfg.Data.LogData
	}

	return sparkify.LoadConfig{
		Connection:   *resolved.ConnConfig,
		SongDataPath: resolveDataPath(cmd, "song-data", etlSongData, songFromConfig, configDir, sparkify.DefaultSongDataPath),
		LogDataPath:  resolveDataPath(cmd, "log-data", etlLogData, logFromConfig, configDir, sparkify.DefaultLogDataPath),
		Timeout:      timeout,
		Verbose:      verbose,
	}, nil
}

func runETL(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	loadConfig, err := buildLoadConfig(cmd, verbose)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger, err := newCommandLogger(cmd, os.Stderr, runID, "etl")
	if err != nil {
		return err
	}
	if verbose {
		logConnectionVerbose(logger, &loadConfig.Connection, "", false)
		logger.Verbose("Song data: %s", loadConfig.SongDataPath)
		logger.Verbose("Log data: %s", loadConfig.LogDataPath)
	}

	// A progress bar would interleave with JSON lines.
	showBar := tui.IsInteractive() && getLogFormatFlag(cmd) != logging.FormatJSON

	parser := records.NewParser(filesystem.NewOSFileSystem())
	svc := services.NewLoadService(
		services.NewSessionManager(db.NewConnector, logger, runID),
		etl.NewDriver(scanner.NewScanner(), logger, etl.NewProgressReporter(logger, os.Stderr, showBar)),
		etl.NewCatalogLoader(parser, logger),
		etl.NewActivityLoader(parser, logger),
		logger,
	)

	ctx, stop := withInterrupt(loadConfig.Timeout, "load")
	defer stop()

	report, err := svc.Run(ctx, loadConfig)
	if report != nil {
		printLoadSummary(logger, report)
	}
	if err != nil {
		if errors.Is(err, sparkify.ErrLoadIncomplete) {
			return err
		}
		return fmt.Errorf("etl failed: %w", err)
	}
	return nil
}

// printLoadSummary repeats the skipped files after the run so they are not
// lost among the per-file output.
func printLoadSummary(logger sparkify.Logger, report *sparkify.LoadReport) {
	for _, phase := range report.Phases {
		for _, failure := range phase.Failed {
			logger.Warn("%s file skipped: %s (%v)", phase.Category, failure.Path, failure.Err)
		}
	}
	if !report.Incomplete() {
		return
	}
	for _, phase := range report.Phases {
		logger.Warn("%s", phase.Summary())
	}
}
