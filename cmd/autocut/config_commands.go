package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"autocut/internal/config"
	"autocut/internal/deps"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())

	return configCmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s (exists: %v)\n\n", path, exists)

			rows := [][]string{
				{"paths.raw_dir", cfg.Paths.RawDir},
				{"paths.edited_dir", cfg.Paths.EditedDir},
				{"paths.input_dir", cfg.Paths.InputDir},
				{"paths.output_dir", cfg.Paths.OutputDir},
				{"paths.styles_dir", cfg.Paths.StylesDir},
				{"paths.work_dir", cfg.Paths.WorkDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.database_path", cfg.Paths.DatabasePath},
				{"stt.model", cfg.STT.Model},
				{"stt.language", cfg.STT.Language},
				{"stt.whisper_binary", cfg.STT.WhisperBinary},
				{"stt.ffmpeg_binary", cfg.STT.FFmpegBinary},
				{"stt.ffprobe_binary", cfg.STT.FFprobeBinary},
				{"stt.cache_dir", cfg.STT.CacheDir},
				{"segmentation.utterance_gap_ms", fmt.Sprintf("%d", cfg.Segmentation.UtteranceGapMS)},
				{"workflow.style_name", cfg.Workflow.StyleName},
				{"workflow.max_parallel", fmt.Sprintf("%d", cfg.Workflow.MaxParallel)},
				{"workflow.watch_settle_seconds", fmt.Sprintf("%d", cfg.Workflow.WatchSettleSeconds)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			table := renderTable([]string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
			fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to point raw_dir and edited_dir at your training recordings.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Style: %s\n\n", cfg.Workflow.StyleName)

			for _, status := range deps.CheckBinaries(deps.Required(cfg)) {
				if status.Available {
					fmt.Fprintln(out, statusLine(statusOK, status.Name, status.Command, colorize))
				} else {
					fmt.Fprintln(out, statusLine(statusWarn, status.Name, status.Detail, colorize))
				}
			}

			fmt.Fprintln(out, "\nConfiguration valid")
			return nil
		},
	}
}
