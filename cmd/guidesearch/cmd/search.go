package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var topic string
	var top int
	var asContext bool

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Rank guide passages against a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			k := top
			if k == 0 {
				k = cfg.Search.TopK
			}

			if asContext {
				fmt.Fprintln(cmd.OutOrStdout(), svc.SearchContext(query, k, topic))
				return nil
			}

			results := svc.Search(query, k, topic)
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching passages found.")
				return nil
			}
			for i, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] relevance=%.2f (%s)\n%s\n\n",
					i+1, r.Chunk.Topic, r.Relevance, r.Chunk.Source, r.Chunk.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Restrict results to one topic")
	cmd.Flags().IntVar(&top, "top", 0, "Number of results (defaults to config top_k)")
	cmd.Flags().BoolVar(&asContext, "context", false, "Print results as an LLM prompt fragment")
	return cmd
}
