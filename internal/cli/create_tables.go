package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/sparkify/internal/db"
	"github.com/vvka-141/sparkify/internal/db/manager"
	"github.com/vvka-141/sparkify/internal/logging"
	"github.com/vvka-141/sparkify/internal/services"
	"github.com/vvka-141/sparkify/internal/tui"
	"github.com/vvka-141/sparkify/internal/ui"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

var createTablesCmd = &cobra.Command{
	Use:   "create-tables",
	Short: "Drop and recreate the analytics database and its tables",
	Long: `Drop and recreate the analytics database, then create the star schema in it:
songplays (fact) and users, songs, artists, time (dimensions).

The maintenance database (postgres unless configured otherwise) is used for
DROP DATABASE and CREATE DATABASE. Other sessions on the target database are
terminated first.

When the target database already exists its data is lost, so the command asks
for confirmation: type the database name at the prompt, or pass --force to
skip the prompt after a short countdown. Without a terminal and without
--force the command refuses to drop an existing database.

Examples:
  sparkify create-tables
  sparkify create-tables -d sparkifydb --force
  sparkify create-tables --connection "postgresql://admin@db.internal/postgres"`,
	Args: cobra.NoArgs,
	RunE: runCreateTables,
}

var (
	createTablesConn    connectionFlags
	createTablesForce   bool
	createTablesTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(createTablesCmd)

	addConnectionFlags(createTablesCmd, &createTablesConn)
	createTablesCmd.Flags().BoolVar(&createTablesForce, "force", false,
		"Drop an existing database without the interactive prompt.\n"+
			"A cancellable countdown is shown first.")
	createTablesCmd.Flags().DurationVar(&createTablesTimeout, "timeout", sparkify.DefaultSchemaTimeout,
		"Maximum duration for the whole operation (e.g. 30s, 5m)")
}

// buildSchemaConfig resolves everything create-tables needs before touching
// the database.
func buildSchemaConfig(cmd *cobra.Command, verbose bool) (sparkify.SchemaConfig, error) {
	projectCfg, err := loadProjectConfig(getConfigDirFlag(cmd))
	if err != nil {
		return sparkify.SchemaConfig{}, err
	}

	resolved, err := resolveConnectionFromFlags(createTablesConn, projectCfg)
	if err != nil {
		return sparkify.SchemaConfig{}, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, createTablesTimeout)
	if err != nil {
		return sparkify.SchemaConfig{}, err
	}

	return sparkify.SchemaConfig{
		Connection:          *resolved.ConnConfig,
		MaintenanceDatabase: resolved.MaintenanceDB,
		Force:               createTablesForce,
		Timeout:             timeout,
		Verbose:             verbose,
	}, nil
}

// selectApprover picks how an overwrite of an existing database is confirmed.
func selectApprover(force, interactive, verbose bool) sparkify.Approver {
	switch {
	case force:
		return ui.NewForcedApprover(verbose)
	case interactive:
		return ui.NewInteractiveApprover(verbose)
	default:
		return ui.NewNonInteractiveApprover()
	}
}

func runCreateTables(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	schemaConfig, err := buildSchemaConfig(cmd, verbose)
	if err != nil {
		return err
	}

	logger, err := newCommandLogger(cmd, os.Stderr, uuid.NewString(), "create-tables")
	if err != nil {
		return err
	}
	if verbose {
		logConnectionVerbose(logger, &schemaConfig.Connection, schemaConfig.MaintenanceDatabase, true)
	}

	approver := selectApprover(schemaConfig.Force, tui.IsInteractive(), verbose)
	svc := services.NewSchemaService(db.NewConnector, approver, logger, manager.New())

	ctx, stop := withInterrupt(schemaConfig.Timeout, "create-tables")
	defer stop()

	if err := svc.CreateTables(ctx, schemaConfig); err != nil {
		return fmt.Errorf("create-tables failed: %w", err)
	}
	return nil
}

// newCommandLogger builds the logger chosen by --log-format and --verbose.
func newCommandLogger(cmd *cobra.Command, out io.Writer, runID, component string) (sparkify.Logger, error) {
	return logging.New(getLogFormatFlag(cmd), out, getVerboseFlag(cmd), runID, component)
}
