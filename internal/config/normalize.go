package config

import (
	"fmt"
	"strings"

	"autocut/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSTT(); err != nil {
		return err
	}
	c.normalizeSegmentation()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name     string
		value    *string
		fallback string
	}{
		{"paths.raw_dir", &c.Paths.RawDir, defaultRawDir},
		{"paths.edited_dir", &c.Paths.EditedDir, defaultEditedDir},
		{"paths.input_dir", &c.Paths.InputDir, defaultInputDir},
		{"paths.output_dir", &c.Paths.OutputDir, defaultOutputDir},
		{"paths.styles_dir", &c.Paths.StylesDir, defaultStylesDir},
		{"paths.work_dir", &c.Paths.WorkDir, defaultWorkDir},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDir},
		{"paths.database_path", &c.Paths.DatabasePath, defaultDatabasePath},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.fallback
		}
		expanded, err := expandPath(*field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeSTT() error {
	c.STT.Model = strings.TrimSpace(c.STT.Model)
	if c.STT.Model == "" {
		c.STT.Model = defaultSTTModel
	}
	c.STT.Language = language.ToISO2(c.STT.Language)
	c.STT.WhisperBinary = strings.TrimSpace(c.STT.WhisperBinary)
	if c.STT.WhisperBinary == "" {
		c.STT.WhisperBinary = defaultWhisperBinary
	}
	c.STT.FFmpegBinary = strings.TrimSpace(c.STT.FFmpegBinary)
	if c.STT.FFmpegBinary == "" {
		c.STT.FFmpegBinary = defaultFFmpegBinary
	}
	c.STT.FFprobeBinary = strings.TrimSpace(c.STT.FFprobeBinary)
	if c.STT.FFprobeBinary == "" {
		c.STT.FFprobeBinary = defaultFFprobeBinary
	}
	if strings.TrimSpace(c.STT.CacheDir) == "" {
		c.STT.CacheDir = defaultSTTCacheDir
	}
	expanded, err := expandPath(c.STT.CacheDir)
	if err != nil {
		return fmt.Errorf("stt.cache_dir: %w", err)
	}
	c.STT.CacheDir = expanded
	if c.STT.TimeoutSeconds <= 0 {
		c.STT.TimeoutSeconds = defaultSTTTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeSegmentation() {
	if c.Segmentation.UtteranceGapMS <= 0 {
		c.Segmentation.UtteranceGapMS = defaultUtteranceGapMS
	}
}

func (c *Config) normalizeWorkflow() {
	c.Workflow.StyleName = strings.TrimSpace(c.Workflow.StyleName)
	if c.Workflow.StyleName == "" {
		c.Workflow.StyleName = defaultStyleName
	}
	if c.Workflow.MaxParallel <= 0 {
		c.Workflow.MaxParallel = defaultMaxParallel
	}
	if c.Workflow.RetryAttempts <= 0 {
		c.Workflow.RetryAttempts = defaultRetryAttempts
	}
	if c.Workflow.RetryDelaySeconds <= 0 {
		c.Workflow.RetryDelaySeconds = defaultRetryDelaySeconds
	}
	if c.Workflow.WatchSettleSeconds <= 0 {
		c.Workflow.WatchSettleSeconds = defaultWatchSettleSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
