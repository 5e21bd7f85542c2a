package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"habitkeep/internal/config"
	"habitkeep/internal/habit"
	"habitkeep/internal/logging"
	"habitkeep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "habitkeep",
	Short:        "Track daily habits from the command line",
	Long:         "Habitkeep tracks named daily habits in plain JSON files under your home directory. Single Go binary, no database.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(retentionCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

// openRegistry wires config, store, and log file for a CLI command. The
// returned cleanup flushes the log.
func openRegistry() (*habit.Registry, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := logging.Open(cfg.LogPath())
	if err != nil {
		// The log file is informational only; run without it.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		logger = zap.NewNop()
		closeLog = func() {}
	}
	return habit.New(st, logger), closeLog, nil
}
