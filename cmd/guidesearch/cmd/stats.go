package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List the indexed topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			for _, topic := range svc.ListTopics() {
				fmt.Fprintln(cmd.OutOrStdout(), topic)
			}
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	var withSummary bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			stats := svc.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total chunks: %d\n", stats.TotalChunks)
			fmt.Fprintf(out, "Total topics: %d\n", stats.TotalTopics)
			for _, topic := range stats.Topics {
				fmt.Fprintf(out, "  - %s\n", topic)
			}
			fmt.Fprintf(out, "Store path:   %s\n", stats.StorePath)
			if withSummary {
				fmt.Fprintf(out, "\n%s\n", svc.Overview(cfg.Summary.MaxSentences))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSummary, "summary", false, "Include a brief corpus overview")
	return cmd
}
