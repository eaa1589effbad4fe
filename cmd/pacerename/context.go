package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"pacerename/internal/config"
	"pacerename/internal/logging"
	"pacerename/internal/naming"
	"pacerename/internal/reference"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = level
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = format
		}
		if err := cfg.Finalize(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// configCopy returns a copy of the loaded config that a command may override
// with its own flags.
func (c *commandContext) configCopy() (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	clone := *cfg
	clone.Organize.Extensions = append([]string(nil), cfg.Organize.Extensions...)
	return &clone, nil
}

// logger builds the command logger. persist adds the log file in the state
// directory; dry runs pass false so they leave the disk untouched.
func (c *commandContext) logger(cfg *config.Config, persist bool) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, persist)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	return logger, nil
}

func loadResolver(cfg *config.Config) (*naming.Resolver, *reference.Tables, error) {
	tables, err := reference.Load(reference.Paths{
		Episodes:   cfg.References.Episodes,
		Chapters:   cfg.References.Chapters,
		CoverPages: cfg.References.CoverPages,
	})
	if err != nil {
		return nil, nil, err
	}
	return naming.NewResolver(tables), tables, nil
}

func flagValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
