package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateJellyfin(); err != nil {
		return err
	}
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrganize() error {
	switch c.Organize.Mode {
	case ModeMove, ModeHardlink, ModeCopy:
	default:
		return fmt.Errorf("organize.mode: unsupported value %q (expected move, hardlink, or copy)", c.Organize.Mode)
	}
	if len(c.Organize.Extensions) == 0 {
		return errors.New("organize.extensions must include at least one extension")
	}
	for _, ext := range c.Organize.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("organize.extensions: invalid extension %q", ext)
		}
	}
	return nil
}

func (c *Config) validateJellyfin() error {
	if !c.Jellyfin.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Jellyfin.URL) == "" {
		return errors.New("jellyfin.url must be set when jellyfin.enabled is true")
	}
	if strings.TrimSpace(c.Jellyfin.APIKey) == "" {
		return errors.New("jellyfin.api_key must be set when jellyfin.enabled is true (or set JELLYFIN_API_KEY)")
	}
	return nil
}

func (c *Config) validatePlex() error {
	if !c.Plex.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Plex.URL) == "" {
		return errors.New("plex.url must be set when plex.enabled is true")
	}
	if strings.TrimSpace(c.Plex.Token) == "" {
		return errors.New("plex.token must be set when plex.enabled is true (or set PLEX_TOKEN)")
	}
	if strings.TrimSpace(c.Plex.Library) == "" {
		return errors.New("plex.library must be set when plex.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
