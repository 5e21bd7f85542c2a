package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"habitkeep/internal/config"
	"habitkeep/internal/habit"
	"habitkeep/internal/logging"
	"habitkeep/internal/server"
	"habitkeep/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, err := store.New(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		logger = zap.NewNop()
		closeLog = func() {}
	}
	defer closeLog()

	reg := habit.New(st, logger)

	// Catch dates that aged out since the last run.
	if changed, err := reg.ApplyRetention(); err != nil {
		return fmt.Errorf("apply retention: %w", err)
	} else if changed {
		fmt.Fprintln(os.Stderr, "  pruned dates outside the retention window")
	}

	srv := server.New(reg, logger, VersionString(), cfg.DataDir)
	defer srv.Close()
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "habitkeep serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  data: %s\n", cfg.DataDir)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	logger.Info("server started", zap.String("addr", addr))

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")
	logger.Info("server stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
