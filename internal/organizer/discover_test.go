package organizer_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"pacerename/internal/organizer"
	"pacerename/internal/services"
	"pacerename/internal/testsupport"
)

func TestDiscoverFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mkv", "a.MKV", "notes.txt", ".hidden.mkv", "sub/c.mkv", ".cache/d.mkv"} {
		testsupport.WriteFile(t, filepath.Join(dir, name), name)
	}

	flat, err := organizer.Discover(dir, false, []string{".mkv"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{filepath.Join(dir, "a.MKV"), filepath.Join(dir, "b.mkv")}
	if !reflect.DeepEqual(flat, want) {
		t.Fatalf("flat discover = %v, want %v", flat, want)
	}

	deep, err := organizer.Discover(dir, true, []string{"MKV"})
	if err != nil {
		t.Fatalf("Discover recursive: %v", err)
	}
	want = append(want, filepath.Join(dir, "sub", "c.mkv"))
	if !reflect.DeepEqual(deep, want) {
		t.Fatalf("recursive discover = %v, want %v", deep, want)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	_, err := organizer.Discover(filepath.Join(t.TempDir(), "missing"), false, []string{".mkv"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	file := filepath.Join(t.TempDir(), "file.mkv")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := organizer.Discover(file, false, []string{".mkv"}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for file source, got %v", err)
	}
}

func TestSummaryString(t *testing.T) {
	entries := []organizer.Entry{
		{Status: organizer.StatusPlaced},
		{Status: organizer.StatusSkipped},
		{Status: organizer.StatusFailed, Err: services.Wrap(services.ErrPlacement, "placement", "match", "x", nil)},
		{Status: organizer.StatusFailed, Err: services.Wrap(services.ErrUnrecognized, "resolve", "match", "y", nil)},
	}
	line := organizer.Summarize(entries).String()
	want := "Summary: 4 files, 1 placed, 1 skipped, 2 failed (placement=1 unrecognized=1)"
	if line != want {
		t.Fatalf("got %q, want %q", line, want)
	}
	if !strings.HasPrefix(organizer.FormatEntry("move", entries[2]), "ERROR: ") {
		t.Fatal("failed entries should render as ERROR lines")
	}
	if !strings.HasPrefix(organizer.FormatEntry("move", entries[1]), "SKIP: ") {
		t.Fatal("skipped entries should render as SKIP lines")
	}
}
