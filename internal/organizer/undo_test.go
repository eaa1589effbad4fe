package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pacerename/internal/config"
	"pacerename/internal/history"
	"pacerename/internal/organizer"
	"pacerename/internal/services"
	"pacerename/internal/testsupport"
)

func TestUndoRestoresMovedFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArcDirs("05 - Alabasta", "Dressrosa"))
	first := testsupport.WriteRelease(t, cfg.Paths.SourceDir, alabastaRelease)
	second := testsupport.WriteRelease(t, cfg.Paths.SourceDir, chapterRelease)
	store := openHistory(t, cfg)
	org := newOrganizer(t, cfg, store)

	report, err := org.Run(context.Background(), []string{first, second}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rows, err := store.Run(context.Background(), report.RunID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("expected two history rows, got %d (%v)", len(rows), err)
	}
	if rows[0].Mode != config.ModeMove || rows[0].Arc != "Alabasta" || rows[1].Kind != "chapter_range" {
		t.Fatalf("unexpected history rows %+v", rows)
	}

	undo, err := org.Undo(context.Background(), "")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undo.RunID != report.RunID || undo.Reverted != 2 || undo.Failed != 0 {
		t.Fatalf("unexpected undo report %+v", undo)
	}
	if undo.Entries[0].Placement.Source != second {
		t.Fatalf("undo should run newest first, got %s", undo.Entries[0].Placement.Source)
	}
	for _, path := range []string{first, second} {
		if got := testsupport.ReadFile(t, path); got != filepath.Base(path) {
			t.Fatalf("restored %s has content %q", path, got)
		}
	}
	for _, entry := range report.Plan.Entries {
		testsupport.AssertMissing(t, entry.Destination)
	}

	if _, err := org.Undo(context.Background(), ""); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected nothing left to undo, got %v", err)
	}
	again, err := org.Undo(context.Background(), report.RunID)
	if err != nil {
		t.Fatalf("Undo named run: %v", err)
	}
	if again.Reverted != 0 || !again.Entries[0].AlreadyUndone {
		t.Fatalf("expected already undone entries, got %+v", again)
	}
}

func TestUndoHardlinkRemovesDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMode(config.ModeHardlink), testsupport.WithArcDirs("05 - Alabasta"))
	path := testsupport.WriteRelease(t, cfg.Paths.SourceDir, alabastaRelease)
	org := newOrganizer(t, cfg, openHistory(t, cfg))

	report, err := org.Run(context.Background(), []string{path}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	undo, err := org.Undo(context.Background(), report.RunID)
	if err != nil || undo.Reverted != 1 {
		t.Fatalf("Undo: %+v %v", undo, err)
	}
	testsupport.AssertMissing(t, report.Plan.Entries[0].Destination)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("source must remain: %v", err)
	}
}

func TestUndoIsolatesFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArcDirs("05 - Alabasta", "Dressrosa"))
	first := testsupport.WriteRelease(t, cfg.Paths.SourceDir, alabastaRelease)
	second := testsupport.WriteRelease(t, cfg.Paths.SourceDir, chapterRelease)
	org := newOrganizer(t, cfg, openHistory(t, cfg))

	report, err := org.Run(context.Background(), []string{first, second}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	testsupport.WriteFile(t, first, "reappeared")

	undo, err := org.Undo(context.Background(), report.RunID)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undo.Reverted != 1 || undo.Failed != 1 {
		t.Fatalf("expected one revert and one failure, got %+v", undo)
	}
	var failed organizer.UndoEntry
	for _, entry := range undo.Entries {
		if entry.Err != nil {
			failed = entry
		}
	}
	if !errors.Is(failed.Err, services.ErrConflict) || failed.Placement.Source != first {
		t.Fatalf("unexpected failure %+v", failed)
	}
	if testsupport.ReadFile(t, second) != chapterRelease {
		t.Fatal("second file should be restored")
	}
}

func TestUndoRequiresHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	org := newOrganizer(t, cfg, nil)
	if _, err := org.Undo(context.Background(), ""); !errors.Is(err, organizer.ErrHistoryDisabled) {
		t.Fatalf("expected ErrHistoryDisabled, got %v", err)
	}
}

func TestHistoryDisabledByConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithArcDirs("05 - Alabasta"))
	cfg.Organize.History = false
	path := testsupport.WriteRelease(t, cfg.Paths.SourceDir, alabastaRelease)
	store := openHistory(t, cfg)
	org := newOrganizer(t, cfg, store)

	if _, err := org.Run(context.Background(), []string{path}, false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	rows, err := store.List(context.Background(), 0)
	if err != nil || len(rows) != 0 {
		t.Fatalf("expected no history rows, got %d (%v)", len(rows), err)
	}
}
