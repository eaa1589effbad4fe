package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeReferences(); err != nil {
		return err
	}
	c.normalizeOrganize()
	c.normalizeJellyfin()
	c.normalizePlex()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		c.Paths.SourceDir = "."
	}
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	// An empty target keeps files next to their source.
	if c.Paths.TargetDir, err = expandPath(strings.TrimSpace(c.Paths.TargetDir)); err != nil {
		return fmt.Errorf("paths.target_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeReferences() error {
	var err error
	if strings.TrimSpace(c.References.Episodes) == "" {
		c.References.Episodes = defaultEpisodesReference
	}
	if c.References.Episodes, err = expandPath(strings.TrimSpace(c.References.Episodes)); err != nil {
		return fmt.Errorf("references.episodes: %w", err)
	}
	if strings.TrimSpace(c.References.Chapters) == "" {
		c.References.Chapters = defaultChaptersReference
	}
	if c.References.Chapters, err = expandPath(strings.TrimSpace(c.References.Chapters)); err != nil {
		return fmt.Errorf("references.chapters: %w", err)
	}
	if strings.TrimSpace(c.References.CoverPages) == "" {
		c.References.CoverPages = defaultCoverPageReference
	}
	if c.References.CoverPages, err = expandPath(strings.TrimSpace(c.References.CoverPages)); err != nil {
		return fmt.Errorf("references.cover_pages: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganize() {
	c.Organize.Mode = strings.ToLower(strings.TrimSpace(c.Organize.Mode))
	if c.Organize.Mode == "" {
		c.Organize.Mode = defaultMode
	}
	exts := make([]string, 0, len(c.Organize.Extensions))
	seen := make(map[string]struct{}, len(c.Organize.Extensions))
	for _, ext := range c.Organize.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = []string{defaultExtension}
	}
	c.Organize.Extensions = exts
}

func (c *Config) normalizeJellyfin() {
	if c.Jellyfin.APIKey == "" {
		if value, ok := os.LookupEnv("JELLYFIN_API_KEY"); ok {
			c.Jellyfin.APIKey = value
		}
	}
	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
}

func (c *Config) normalizePlex() {
	if c.Plex.Token == "" {
		if value, ok := os.LookupEnv("PLEX_TOKEN"); ok {
			c.Plex.Token = value
		}
	}
	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
	c.Plex.Library = strings.TrimSpace(c.Plex.Library)
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
