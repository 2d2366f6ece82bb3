package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFlag    string
		logLevelFlag  string
		logFormatFlag string
	)
	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag)

	root := &cobra.Command{
		Use:           "hoopcut",
		Short:         "Cut a player's stints and highlight reels from a basketball broadcast",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	root.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (console, json)")

	root.AddCommand(newRunCommand(ctx))
	root.AddCommand(newClockCommand(ctx))
	root.AddCommand(newSubsCommand(ctx))
	root.AddCommand(newPlaysCommand(ctx))
	root.AddCommand(newConfigCommand(ctx))
	return root
}
