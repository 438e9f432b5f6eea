package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"guidesearch/internal/store"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Build the index, or load it when the guides are unchanged",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			stats := svc.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks across %d topics (store: %s)\n",
				stats.TotalChunks, stats.TotalTopics, stats.StorePath)
			return nil
		},
	}
}

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Discard the cached index and rebuild it from the guides folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Invalidate before the service loads so the build happens once.
			if err := store.New(cfg.StoreDir, logger).Invalidate(); err != nil {
				return fmt.Errorf("invalidate store: %w", err)
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			stats := svc.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Reindexed %d chunks across %d topics\n",
				stats.TotalChunks, stats.TotalTopics)
			return nil
		},
	}
}
