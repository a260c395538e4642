package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/use-agent/clubfeed/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "clubtools",
	Short: "clubtools runs the offline catalog and prerequisite jobs.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		level := slog.LevelInfo
		if cfg.Log.Level == "debug" {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
