package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pacerename/internal/history"
	"pacerename/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, history.Placement{RunID: "run-1", Mode: "move", Source: "/in/a.mkv", Destination: "/out/A/a.mkv", Arc: "Alabasta", Kind: "direct_arc"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", first)
	}
	if _, err := store.Record(ctx, history.Placement{RunID: "run-1", Mode: "move", Source: "/in/b.mkv", Destination: "/out/A/b.mkv", Replaced: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(ctx, history.Placement{RunID: "run-2", Mode: "hardlink", Source: "/in/c.mkv", Destination: "/out/B/c.mkv"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	run, err := store.Run(ctx, "run-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(run) != 2 || run[0].Source != "/in/a.mkv" || run[1].Source != "/in/b.mkv" {
		t.Fatalf("unexpected run rows %+v", run)
	}
	if run[0].Arc != "Alabasta" || run[0].Kind != "direct_arc" || !run[1].Replaced {
		t.Fatalf("fields did not round-trip: %+v", run)
	}

	if _, err := store.Run(ctx, "missing"); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordValidates(t *testing.T) {
	store := openStore(t)
	if _, err := store.Record(context.Background(), history.Placement{Source: "a", Destination: "b"}); err == nil {
		t.Fatal("expected error without run id")
	}
	if _, err := store.Record(context.Background(), history.Placement{RunID: "r"}); err == nil {
		t.Fatal("expected error without paths")
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for _, src := range []string{"a", "b", "c"} {
		if _, err := store.Record(ctx, history.Placement{RunID: "r", Mode: "copy", Source: src, Destination: src + ".out"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	rows, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 || rows[0].Source != "c" || rows[1].Source != "b" {
		t.Fatalf("unexpected list %+v", rows)
	}
	all, err := store.List(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("List(0) = %d rows, %v", len(all), err)
	}
}

func TestLastRunIDSkipsUndone(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.LastRunID(ctx); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty ledger, got %v", err)
	}
	if _, err := store.Record(ctx, history.Placement{RunID: "old", Mode: "move", Source: "a", Destination: "b"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	latest, err := store.Record(ctx, history.Placement{RunID: "new", Mode: "move", Source: "c", Destination: "d"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id, err := store.LastRunID(ctx); err != nil || id != "new" {
		t.Fatalf("LastRunID = %q, %v", id, err)
	}
	if err := store.MarkUndone(ctx, latest.ID); err != nil {
		t.Fatalf("MarkUndone: %v", err)
	}
	if err := store.MarkUndone(ctx, latest.ID); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected second MarkUndone to report ErrNotFound, got %v", err)
	}
	if id, err := store.LastRunID(ctx); err != nil || id != "old" {
		t.Fatalf("LastRunID after undo = %q, %v", id, err)
	}
	rows, err := store.Run(ctx, "new")
	if err != nil || !rows[0].Undone() {
		t.Fatalf("expected undone placement, got %+v (%v)", rows, err)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Placement{RunID: "r", Mode: "move", Source: "a", Destination: "b"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	rows, err := reopened.List(context.Background(), 0)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected persisted row, got %d (%v)", len(rows), err)
	}
}
