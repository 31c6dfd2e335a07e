package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"autocut/internal/runstore"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect learning and apply run history",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))

	return runsCmd
}

func (c *commandContext) withRunStore(fn func(*runstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := runstore.Open(cfg.Paths.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunStore(func(store *runstore.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					version := ""
					if run.ProfileVersion > 0 {
						version = strconv.Itoa(run.ProfileVersion)
					}
					rows = append(rows, []string{
						run.ID[:8],
						run.Mode,
						run.StyleName,
						version,
						run.Status,
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					})
				}
				table := renderTable(
					[]string{"Run", "Mode", "Style", "Profile", "Status", "Started"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the recordings processed by a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunStore(func(store *runstore.Store) error {
				run, err := store.FindRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				recordings, err := store.ListRecordings(cmd.Context(), run.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s (%s, style %q, status %s)\n", run.ID, run.Mode, run.StyleName, run.Status)
				if run.Error != "" {
					fmt.Fprintf(out, "Error: %s\n", run.Error)
				}
				if len(recordings) == 0 {
					fmt.Fprintln(out, "No recordings recorded for this run")
					return nil
				}

				rows := make([][]string, 0, len(recordings))
				for _, rec := range recordings {
					detail := rec.Reason
					if rec.Status == runstore.RecordingCompleted && rec.OriginalMS > 0 {
						detail = fmt.Sprintf("%s -> %s (-%0.1f%%, %d cuts)",
							formatDuration(rec.OriginalMS), formatDuration(rec.FinalMS),
							rec.ReductionPercent(), rec.CutCount)
					}
					rows = append(rows, []string{
						filepath.Base(rec.SourcePath),
						rec.Status,
						detail,
					})
				}
				table := renderTable(
					[]string{"Recording", "Status", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}
}
