package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"autocut/internal/pipeline"
)

func newLearnCommand(ctx *commandContext) *cobra.Command {
	var rawDir, editedDir, styleName string

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Distill a style profile from raw/edited recording pairs",
		Long: `Learn transcribes every raw recording and its edited counterpart,
aligns the transcripts to find what the editor removed, and freezes the
observed thresholds into the next version of the style profile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if rawDir != "" {
				cfg.Paths.RawDir = rawDir
			}
			if editedDir != "" {
				cfg.Paths.EditedDir = editedDir
			}
			if styleName != "" {
				cfg.Workflow.StyleName = styleName
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			svc, err := ctx.mediaService()
			if err != nil {
				return err
			}
			store, err := ctx.profileStore()
			if err != nil {
				return err
			}
			runs := ctx.runStore(logger)
			if runs != nil {
				defer runs.Close()
			}

			runCtx, cancel := signalContext(cmd.Context())
			defer cancel()

			learner := pipeline.NewLearner(cfg, svc, store, runs, logger)
			report, err := learner.Run(runCtx)
			if err != nil {
				return err
			}

			printLearnReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawDir, "raw", "", "Directory of raw recordings (overrides config)")
	cmd.Flags().StringVar(&editedDir, "edited", "", "Directory of edited counterparts (overrides config)")
	cmd.Flags().StringVar(&styleName, "style-name", "", "Style name to learn (overrides config)")
	return cmd
}

func printLearnReport(cmd *cobra.Command, report pipeline.LearnReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, pair := range report.Pairs {
		label := filepath.Base(pair.Raw)
		if pair.Skipped {
			fmt.Fprintln(out, statusLine(statusWarn, label, "skipped: "+pair.Reason, colorize))
			continue
		}
		fmt.Fprintln(out, statusLine(statusOK, label,
			fmt.Sprintf("%d removals analyzed", pair.Removals), colorize))
	}

	fmt.Fprintf(out, "\nLearned style %q version %d\n", report.Profile.Name, report.Profile.Version)
	fmt.Fprintf(out, "Profile written to %s\n", report.ProfilePath)
}
