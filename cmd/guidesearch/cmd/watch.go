package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"guidesearch/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var debounceMS int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the index fresh by reindexing when guide files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			w := watcher.New(cfg.GuidesDir, time.Duration(debounceMS)*time.Millisecond, logger, func() {
				if err := svc.Reindex(); err != nil {
					logger.Error("reindex failed", "error", err)
					return
				}
				stats := svc.Stats()
				logger.Info("reindexed", "chunks", stats.TotalChunks, "topics", stats.TotalTopics)
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&debounceMS, "debounce", 500, "Milliseconds to wait for changes to settle")
	return cmd
}
