package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"autocut/internal/profile"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	var stylesDir string

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect stored style profiles",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if stylesDir != "" {
				cfg.Paths.StylesDir = stylesDir
			}
			return nil
		},
	}

	profilesCmd.PersistentFlags().StringVar(&stylesDir, "styles", "", "Styles directory (overrides config)")
	profilesCmd.AddCommand(newProfilesListCommand(ctx))
	profilesCmd.AddCommand(newProfilesShowCommand(ctx))

	return profilesCmd
}

func newProfilesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profile versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.profileStore()
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles stored yet (run learning first)")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				created := ""
				if p, err := profile.Load(e.Path); err == nil {
					created = p.CreatedAt.Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{e.Name, strconv.Itoa(e.Version), created, e.Path})
			}
			table := renderTable(
				[]string{"Style", "Version", "Created", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func newProfilesShowCommand(ctx *commandContext) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "show [style-name]",
		Short: "Show the frozen rules of a profile version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.profileStore()
			if err != nil {
				return err
			}

			name := cfg.Workflow.StyleName
			if len(args) == 1 {
				name = args[0]
			}

			var prof profile.Profile
			var path string
			if version > 0 {
				prof, path, err = store.Version(name, version)
			} else {
				prof, path, err = store.Latest(name)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Style %q version %d (%s)\n", prof.Name, prof.Version, path)
			fmt.Fprintf(out, "Created: %s\n\n", prof.CreatedAt.Format("2006-01-02 15:04:05"))

			rows := [][]string{
				{"silence.min_ms", strconv.FormatInt(prof.Silence.MinMS, 10)},
				{"silence.threshold_db", fmt.Sprintf("%.1f", prof.Silence.ThresholdDB)},
				{"fillers.words", fmt.Sprintf("%v", prof.Fillers.Words)},
				{"fillers.min_pause_ms", strconv.FormatInt(prof.Fillers.MinPauseMS, 10)},
				{"fillers.max_duration_ms", strconv.FormatInt(prof.Fillers.MaxDurationMS, 10)},
				{"retakes.strategy", string(prof.Retakes.Strategy)},
				{"retakes.similarity_threshold", fmt.Sprintf("%.2f", prof.Retakes.SimilarityThreshold)},
				{"retakes.max_gap_seconds", fmt.Sprintf("%.1f", prof.Retakes.MaxGapSeconds)},
				{"cuts.padding_ms", strconv.FormatInt(prof.Cuts.PaddingMS, 10)},
				{"cuts.crossfade_ms", strconv.FormatInt(prof.Cuts.CrossfadeMS, 10)},
				{"cuts.min_segment_ms", strconv.FormatInt(prof.Cuts.MinSegmentMS, 10)},
			}
			table := renderTable([]string{"Rule", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
			fmt.Fprintln(out, table)
			return nil
		},
	}

	cmd.Flags().IntVarP(&version, "version", "v", 0, "Show a specific version instead of the latest")
	return cmd
}
