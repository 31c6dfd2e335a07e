package config

import (
	"fmt"
	"regexp"
)

var styleNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

var validSTTModels = map[string]struct{}{
	"tiny":   {},
	"base":   {},
	"small":  {},
	"medium": {},
	"large":  {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSTT(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSTT() error {
	if _, ok := validSTTModels[c.STT.Model]; !ok {
		return fmt.Errorf("stt.model must be one of tiny, base, small, medium, large; got %q", c.STT.Model)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if !styleNamePattern.MatchString(c.Workflow.StyleName) {
		return fmt.Errorf("workflow.style_name must be lowercase letters, digits, hyphens, or underscores; got %q", c.Workflow.StyleName)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json; got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error; got %q", c.Logging.Level)
	}
	return nil
}
