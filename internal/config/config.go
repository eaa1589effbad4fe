package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	TargetDir string `toml:"target_dir"`
	StateDir  string `toml:"state_dir"`
}

// References contains the locations of the static lookup tables.
type References struct {
	Episodes   string `toml:"episodes"`
	Chapters   string `toml:"chapters"`
	CoverPages string `toml:"cover_pages"`
}

// Organize contains configuration for discovery and placement.
type Organize struct {
	Mode              string   `toml:"mode"`
	Recursive         bool     `toml:"recursive"`
	Extensions        []string `toml:"extensions"`
	OverwriteExisting bool     `toml:"overwrite_existing"`
	History           bool     `toml:"history"`
}

// Jellyfin contains configuration for Jellyfin library refresh.
type Jellyfin struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
}

// Plex contains configuration for Plex library refresh.
type Plex struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Library string `toml:"library"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for pacerename.
//
// Configuration sections by subsystem:
//   - Paths: source, target, and state directories
//   - References: episode, chapter, and cover-page lookup tables
//   - Organize: discovery filters and placement mode
//   - Jellyfin / Plex: optional library refresh after a run
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	References References `toml:"references"`
	Organize   Organize   `toml:"organize"`
	Jellyfin   Jellyfin   `toml:"jellyfin"`
	Plex       Plex       `toml:"plex"`
	Logging    Logging    `toml:"logging"`
}

// Placement modes.
const (
	ModeMove     = "move"
	ModeHardlink = "hardlink"
	ModeCopy     = "copy"
)

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Finalize normalizes and validates the configuration. Callers that mutate a
// loaded config (for example from CLI flags) must call it again.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pacerename.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory used for the run lock,
// history ledger, and log file.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	return nil
}

// InPlace reports whether files are renamed in their own directory instead of
// being placed under arc directories. That is the case when no target is set
// or the target is the source directory itself.
func (c *Config) InPlace() bool {
	target := strings.TrimSpace(c.Paths.TargetDir)
	if target == "" {
		return true
	}
	return filepath.Clean(target) == filepath.Clean(strings.TrimSpace(c.Paths.SourceDir))
}

// LockPath returns the path of the exclusive run lock.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "pacerename.lock")
}

// HistoryPath returns the path of the placement history database.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LogPath returns the path of the persistent log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, "pacerename.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "pacerename")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/state/pacerename"
	}
	return filepath.Join(home, ".local", "state", "pacerename")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
