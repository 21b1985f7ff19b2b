package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vigil-hq/vigil/pkg/analysis"
	"vigil-hq/vigil/pkg/report"
)

var watchFlags struct {
	file     string
	debounce time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-audit a configuration on every change",
	Long: `Watch a configuration file and re-run the audit whenever it changes.

Sample values resolved through identifiers are cached across runs in a
bounded cache, so repeated audits of a large configuration stay cheap.

Examples:
  # Watch with the default debounce interval
  vigil watch --file config.yaml

  # Slower debounce for editors that write many times
  vigil watch --file config.yaml --debounce 500ms`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.file, "file", "f", "", "configuration file to watch (required)")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 100*time.Millisecond, "delay before re-auditing after a change")
	watchCmd.MarkFlagRequired("file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cache, err := analysis.NewLRUSampleCache(512)
	if err != nil {
		return err
	}

	run := func() error {
		r, err := auditFile(watchFlags.file, cache)
		if err != nil {
			return err
		}
		return report.WriteText(os.Stdout, r)
	}

	// First audit up front; later runs come from file events.
	if err := run(); err != nil {
		logger.Error("Audit failed", "error", err)
	}

	watcher, err := report.NewFileWatcher(watchFlags.file, watchFlags.debounce, logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watcher.Watch(ctx, run)
}
