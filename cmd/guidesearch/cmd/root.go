// Package cmd provides the CLI commands for guidesearch.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"guidesearch/internal/chunker"
	"guidesearch/internal/config"
	"guidesearch/internal/service"
	"guidesearch/internal/store"
	"guidesearch/internal/summarizer"
)

var (
	cfgPath   string
	debugMode bool

	cfg    *config.AppConfig
	logger *slog.Logger
)

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command for the guidesearch CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guidesearch",
		Short: "Local TF-IDF search over game walkthrough guides",
		Long: `guidesearch indexes plain-text walkthroughs from a guides folder and
answers free-text queries with ranked passages. The index is cached on
disk and rebuilt only when the guide files change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			var err error
			if cfgPath == "" {
				cfg, _, err = config.LoadDefault()
			} else {
				cfg, err = config.Load(cfgPath)
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			level := slog.LevelInfo
			if debugMode {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newIndexCmd(),
		newReindexCmd(),
		newSearchCmd(),
		newTopicsCmd(),
		newStatsCmd(),
		newTUICmd(),
		newWatchCmd(),
		newInitCmd(),
	)
	return cmd
}

// newService builds or loads the index and returns the serving core.
func newService() (*service.KnowledgeService, error) {
	st := store.New(cfg.StoreDir, logger)
	ch := chunker.NewParagraphChunker(cfg.Chunker.ChunkSize, cfg.Chunker.OverlapWords)
	return service.New(cfg.GuidesDir, st, ch, summarizer.NewFrequencySummarizer(), logger)
}
