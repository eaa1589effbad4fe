package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pacerename/internal/config"
	"pacerename/internal/reference"
	"pacerename/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if result.Status() != "OK" {
		t.Fatalf("unexpected status %s", result.Status())
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckReferenceFile(t *testing.T) {
	dir := t.TempDir()
	good := testsupport.WriteFile(t, filepath.Join(dir, "episodes.json"), `{"Alabasta": {"05": "0130"}}`)
	bad := testsupport.WriteFile(t, filepath.Join(dir, "broken.json"), `{"Alabasta":`)

	if r := CheckReferenceFile("episodes", good); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckReferenceFile("episodes", bad); r.Passed || r.Status() != "ERROR" {
		t.Fatalf("expected error for malformed file, got %+v", r)
	}
	if r := CheckReferenceFile("episodes", filepath.Join(dir, "missing.json")); r.Passed || r.Optional {
		t.Fatalf("required reference must fail hard, got %+v", r)
	}
	if r := checkReference("chapters", filepath.Join(dir, "missing.json"), true); r.Status() != "WARN" {
		t.Fatalf("optional reference should warn, got %+v", r)
	}
}

func TestCheckArcCoverage(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"05 - Alabasta", "Jaya", "Jaya extras"} {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	tables := reference.NewTables(map[string]map[string]string{
		"Alabasta": {"01": "0001"},
		"Jaya":     {"01": "0002"},
		"Skypeia":  {"01": "0003"},
	}, nil, nil, reference.Sources{})

	r := CheckArcCoverage(tables, root)
	if r.Passed || r.Status() != "WARN" {
		t.Fatalf("expected warning, got %+v", r)
	}
	if !strings.Contains(r.Detail, "missing: Skypeia") || !strings.Contains(r.Detail, "ambiguous: Jaya") {
		t.Fatalf("unexpected detail %q", r.Detail)
	}

	full := reference.NewTables(map[string]map[string]string{"Alabasta": {"01": "0001"}}, nil, nil, reference.Sources{})
	if r := CheckArcCoverage(full, root); !r.Passed {
		t.Fatalf("expected full coverage, got %+v", r)
	}
}

func TestCheckJellyfin_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Emby-Token") != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := CheckJellyfin(context.Background(), srv.URL, "good-key")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckJellyfin_BadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	result := CheckJellyfin(context.Background(), srv.URL, "bad-key")
	if result.Passed {
		t.Fatal("expected failure for bad key")
	}
}

func TestCheckJellyfin_MissingURL(t *testing.T) {
	result := CheckJellyfin(context.Background(), "", "key")
	if result.Passed {
		t.Fatal("expected failure for missing URL")
	}
}

func TestCheckPlex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Plex-Token") != "plex-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`<MediaContainer><Directory key="3" title="One Pace"/></MediaContainer>`))
	}))
	defer srv.Close()

	if r := CheckPlex(context.Background(), srv.URL, "plex-token", "One Pace"); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckPlex(context.Background(), srv.URL, "plex-token", "Anime"); r.Passed {
		t.Fatal("expected failure for unknown library")
	}
	if r := CheckPlex(context.Background(), srv.URL, "wrong", "One Pace"); r.Passed {
		t.Fatal("expected failure for bad token")
	}
	if r := CheckPlex(context.Background(), srv.URL, "plex-token", ""); r.Passed {
		t.Fatal("expected failure for missing library")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_FixtureConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArcDirs("05 - Alabasta", "Dressrosa", "Orange Town"))
	testsupport.WriteReferences(t, cfg, testsupport.SampleFixture())

	results := RunAll(context.Background(), cfg)
	want := []string{"Source directory", "Target directory", "State directory", "Episode reference", "Chapter reference", "Cover page reference", "Arc coverage"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %+v", len(want), len(results), results)
	}
	for idx, r := range results {
		if r.Name != want[idx] {
			t.Errorf("result %d: got %q, want %q", idx, r.Name, want[idx])
		}
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if Failed(results) {
		t.Fatal("expected no failures")
	}
}

func TestRunAll_IncludesJellyfinWhenEnabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Paths.SourceDir = t.TempDir()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Jellyfin.Enabled = true
	cfg.Jellyfin.URL = srv.URL
	cfg.Jellyfin.APIKey = "test"

	results := RunAll(context.Background(), &cfg)
	found := false
	for _, r := range results {
		if r.Name == "Jellyfin" {
			found = true
			if !r.Passed {
				t.Errorf("Jellyfin check failed: %s", r.Detail)
			}
		}
	}
	if !found {
		t.Fatal("expected Jellyfin check in results")
	}
	if !Failed(results) {
		t.Fatal("missing default reference file should fail the run")
	}
}
