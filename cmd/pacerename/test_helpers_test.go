package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"pacerename/internal/config"
	"pacerename/internal/testsupport"
)

const (
	alabastaRelease = "[One Pace][1080p] Alabasta 05 [1080p][ABCD1234].mkv"
	unknownArc      = "[One Pace][1080p] Skypeia 01 [1080p][ABCD1234].mkv"
	alabastaName    = "One.Piece.0130.1080p.mkv"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("NO_COLOR", "1")
	opts = append([]testsupport.ConfigOption{testsupport.WithArcDirs("05 - Alabasta", "Dressrosa", "Orange Town")}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	testsupport.WriteReferences(t, cfg, testsupport.SampleFixture())

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	full := args
	if configPath != "" {
		full = append([]string{"--config", configPath, "--log-level", "error"}, args...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\nactual: %s", needle, haystack)
	}
}
