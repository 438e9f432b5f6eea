package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"guidesearch/internal/tui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive search over the indexed guides",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			m := tui.New(svc, svc.Overview(cfg.Summary.MaxSentences), cfg.Search.TopK)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}
