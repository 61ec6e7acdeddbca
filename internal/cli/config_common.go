package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/sparkify/internal/config"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// loadProjectConfig loads .env and sparkify.yaml from dir.
// Returns nil config if sparkify.yaml does not exist (not an error).
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, err, sparkify.ErrInvalidConfig)
	}
	return projectCfg, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring
// sparkify.yaml if the flag wasn't set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if cmd.Flags().Changed("timeout") {
		return flagTimeout, nil
	}
	fromFile, err := projectCfg.TimeoutDuration()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", err, sparkify.ErrInvalidConfig)
	}
	if fromFile > 0 {
		return fromFile, nil
	}
	return flagTimeout, nil
}

// resolveDataPath picks the --song-data/--log-data value, then sparkify.yaml,
// then the built-in default. Relative paths from sparkify.yaml are taken
// relative to the directory holding it.
func resolveDataPath(cmd *cobra.Command, flagName, flagValue, fromConfig, configDir, fallback string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if fromConfig != "" {
		if filepath.IsAbs(fromConfig) {
			return fromConfig
		}
		return filepath.Join(configDir, fromConfig)
	}
	if flagValue != "" {
		return flagValue
	}
	return fallback
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(logger sparkify.Logger, connConfig *sparkify.ConnectionConfig, maintenanceDB string, includeMaintenanceDB bool) {
	logger.Verbose("Connection resolved:")
	logger.Verbose("  Host: %s", connConfig.Host)
	logger.Verbose("  Port: %d", connConfig.Port)
	logger.Verbose("  User: %s", connConfig.Username)
	logger.Verbose("  Target Database: %s", connConfig.Database)
	if includeMaintenanceDB {
		logger.Verbose("  Maintenance Database: %s", maintenanceDB)
	}
	logger.Verbose("  SSL Mode: %s", connConfig.SSLMode)
	logger.Verbose("  Auth Method: %s", connConfig.AuthMethod)
}

// withInterrupt returns a context bounded by timeout that is also cancelled
// on Ctrl+C or SIGTERM. The returned stop func releases both.
func withInterrupt(timeout time.Duration, what string) (context.Context, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintf(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling %s...\n", what)
			cancel()
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		close(done)
		cancel()
	}
}
