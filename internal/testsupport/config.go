package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"pacerename/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Source, target, and state directories exist on return; reference paths
// point at files under <base>/refs that callers write with [WriteReferences].
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "source")
	cfgVal.Paths.TargetDir = filepath.Join(base, "target")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.References.Episodes = filepath.Join(base, "refs", "episodes-reference.json")
	cfgVal.References.Chapters = filepath.Join(base, "refs", "chapters-reference.json")
	cfgVal.References.CoverPages = filepath.Join(base, "refs", "coverpage-reference.json")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{cfgVal.Paths.SourceDir, cfgVal.Paths.TargetDir, cfgVal.Paths.StateDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	return builder.cfg
}

// WithMode sets the placement mode.
func WithMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Mode = mode
	}
}

// WithInPlace clears the target directory so files are renamed where they are.
func WithInPlace() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.TargetDir = ""
	}
}

// WithOverwrite enables replacing existing destinations.
func WithOverwrite() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.OverwriteExisting = true
	}
}

// WithArcDirs creates the named arc directories under the target root.
func WithArcDirs(names ...string) ConfigOption {
	return func(b *configBuilder) {
		for _, name := range names {
			dir := filepath.Join(b.cfg.Paths.TargetDir, name)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				b.t.Fatalf("mkdir arc dir %s: %v", name, err)
			}
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
