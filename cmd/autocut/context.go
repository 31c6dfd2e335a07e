package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"autocut/internal/config"
	"autocut/internal/logging"
	"autocut/internal/media"
	"autocut/internal/pipeline"
	"autocut/internal/profile"
	"autocut/internal/runstore"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

func (c *commandContext) mediaService() (*media.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return media.NewService(
		media.WithBinaries(cfg.STT.FFmpegBinary, cfg.STT.FFprobeBinary, cfg.STT.WhisperBinary),
		media.WithWhisperModel(cfg.STT.Model),
		media.WithCacheDir(cfg.STT.CacheDir),
	), nil
}

func (c *commandContext) profileStore() (*profile.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return profile.NewStore(cfg.Paths.StylesDir)
}

// runStore opens run history; a failure is reported, not fatal, so an
// unreadable database never blocks an edit.
func (c *commandContext) runStore(logger *slog.Logger) *runstore.Store {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil
	}
	store, err := runstore.Open(cfg.Paths.DatabasePath)
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
		return nil
	}
	return store
}

func (c *commandContext) newApplier(profilePath string) (*pipeline.Applier, *runstore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, nil, err
	}
	svc, err := c.mediaService()
	if err != nil {
		return nil, nil, err
	}
	store, err := c.profileStore()
	if err != nil {
		return nil, nil, err
	}
	runs := c.runStore(logger)
	return pipeline.NewApplier(cfg, svc, store, runs, logger), runs, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func formatDuration(ms int64) string {
	return time.Duration(ms * int64(time.Millisecond)).Round(100 * time.Millisecond).String()
}
