// Package cmd implements the catalog CLI command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sam-pro/catalog/internal/app"
	"github.com/sam-pro/catalog/internal/config"
	"github.com/sam-pro/catalog/internal/logger"
	"github.com/sam-pro/catalog/internal/models"
)

var (
	cfg         *config.Config
	application *app.App
	dataDir     string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inventory catalog manager",
	Long: `catalog manages a local inventory: items, quick-entry value lists,
user accounts, settings and backups. All state lives in a per-machine
store; log in first, then manage the catalog.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
}

// Execute runs the CLI. version and buildDate are stamped via ldflags.
func Execute(version, buildDate string) {
	if version == "" {
		version = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildDate)
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// setupApp loads configuration, initializes logging and assembles the
// application before any command runs.
func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.Load()
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.New()
	if err := log.Init(cfg.Env, cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	var err error
	application, err = app.New(cmd.Context(), cfg, log.Log)
	if err != nil {
		return fmt.Errorf("init application: %w", err)
	}
	return nil
}

// requireSession resolves the active session or tells the caller to log in.
func requireSession() (*models.User, error) {
	user, err := application.Auth.Current()
	if err != nil {
		return nil, fmt.Errorf("%w (run `catalog login`)", err)
	}
	return user, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "state directory (default ~/.sampro-catalog)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
