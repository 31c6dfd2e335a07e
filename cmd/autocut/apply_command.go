package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"autocut/internal/pipeline"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var profilePath string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "apply [recording-or-directory]",
		Short: "Edit recordings under a frozen style profile",
		Long: `Apply edits the given recording, or the first supported recording
in the given directory, using the latest stored profile version for the
configured style. The same recording and profile always produce the
same edit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				if err := os.MkdirAll(outputDir, 0o755); err != nil {
					return fmt.Errorf("create output directory %q: %w", outputDir, err)
				}
				cfg.Paths.OutputDir = outputDir
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

			report, err := applier.Run(runCtx, input, profilePath)
			if err != nil {
				return err
			}

			printApplyReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Apply a specific profile file instead of the latest version")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for edited recordings (overrides config)")
	return cmd
}

func printApplyReport(cmd *cobra.Command, report pipeline.ApplyReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	edited := 0
	for _, res := range report.Recordings {
		label := filepath.Base(res.Source)
		if res.Skipped {
			fmt.Fprintln(out, statusLine(statusWarn, label, "skipped: "+res.Reason, colorize))
			continue
		}
		edited++
		fmt.Fprintln(out, statusLine(statusOK, label,
			fmt.Sprintf("%s -> %s (-%0.1f%%, %d cuts)",
				formatDuration(res.OriginalMS), formatDuration(res.FinalMS),
				res.ReductionPercent(), res.CutCount), colorize))
	}

	fmt.Fprintf(out, "\nEdited %d of %d recordings with style %q version %d\n",
		edited, len(report.Recordings), report.Profile.Name, report.Profile.Version)
}
