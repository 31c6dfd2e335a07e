package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"autocut/internal/pipeline"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var profilePath string
	var inputDir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the input directory and edit recordings as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if inputDir != "" {
				cfg.Paths.InputDir = inputDir
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			applier, runs, err := ctx.newApplier(profilePath)
			if err != nil {
				return err
			}
			if runs != nil {
				defer runs.Close()
			}

			runCtx, cancel := signalContext(cmd.Context())
			defer cancel()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (ctrl-c to stop)\n", cfg.Paths.InputDir)
			watcher := pipeline.NewWatcher(cfg, applier, profilePath, logger)
			if err := watcher.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Apply a specific profile file instead of the latest version")
	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory to watch (overrides config)")
	return cmd
}
