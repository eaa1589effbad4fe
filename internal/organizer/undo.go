package organizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pacerename/internal/config"
	"pacerename/internal/fileutil"
	"pacerename/internal/history"
	"pacerename/internal/logging"
	"pacerename/internal/services"
)

// ErrHistoryDisabled is returned by Undo when no history store is configured.
var ErrHistoryDisabled = errors.New("history is disabled")

// UndoEntry is the outcome of reversing one placement.
type UndoEntry struct {
	Placement history.Placement
	// AlreadyUndone is set for placements reversed by an earlier undo.
	AlreadyUndone bool
	Err           error
}

// UndoReport summarizes an undo.
type UndoReport struct {
	RunID    string
	Entries  []UndoEntry
	Reverted int
	Failed   int
}

// Undo reverses the placements of runID, newest first. An empty runID selects
// the most recent run that still has active placements.
func (o *Organizer) Undo(ctx context.Context, runID string) (*UndoReport, error) {
	if o.history == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageUndo, "open history", "", ErrHistoryDisabled)
	}

	lock, err := acquireLock(o.cfg.LockPath())
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	if runID == "" {
		runID, err = o.history.LastRunID(ctx)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, stageUndo, "find last run", "", err)
		}
	}
	rows, err := o.history.Run(ctx, runID)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageUndo, "load run", runID, err)
	}

	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)
	report := &UndoReport{RunID: runID}
	for idx := len(rows) - 1; idx >= 0; idx-- {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		p := rows[idx]
		entry := UndoEntry{Placement: p}
		if p.Undone() {
			entry.AlreadyUndone = true
			report.Entries = append(report.Entries, entry)
			continue
		}

		entry.Err = revert(p)
		if entry.Err == nil {
			if err := o.history.MarkUndone(ctx, p.ID); err != nil {
				entry.Err = services.Wrap(services.ErrFilesystem, stageUndo, "mark undone", p.Destination, err)
			}
		}
		if entry.Err != nil {
			report.Failed++
			logging.WarnWithContext(logger, "undo failed", logging.Problem{
				Event:  "undo_failed",
				Err:    entry.Err,
				Hint:   "restore the file by hand, then rerun undo",
				Impact: "placement left as is",
			}, logging.String(logging.FieldFile, filepath.Base(p.Destination)))
		} else {
			report.Reverted++
			logger.Info("placement reverted",
				logging.String("source", p.Source),
				logging.String("destination", p.Destination),
			)
		}
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

func revert(p history.Placement) error {
	srcExists, err := fileutil.Exists(p.Source)
	if err != nil {
		return services.Wrap(services.ErrFilesystem, stageUndo, "stat source", p.Source, err)
	}

	switch p.Mode {
	case config.ModeHardlink, config.ModeCopy:
		if !srcExists {
			return services.Wrap(services.ErrFilesystem, stageUndo, p.Mode,
				fmt.Sprintf("source %q is gone; keeping %q", p.Source, p.Destination), os.ErrNotExist)
		}
		if err := fileutil.RemoveFile(p.Destination); err != nil {
			return services.Wrap(services.ErrFilesystem, stageUndo, p.Mode, p.Destination, err)
		}
		return nil
	default:
		if srcExists {
			return services.Wrap(services.ErrConflict, stageUndo, "move back",
				fmt.Sprintf("source %q exists again", p.Source), ErrDestinationExists)
		}
		if err := os.MkdirAll(filepath.Dir(p.Source), 0o755); err != nil {
			return services.Wrap(services.ErrFilesystem, stageUndo, "create directory", filepath.Dir(p.Source), err)
		}
		if err := fileutil.MoveFile(p.Destination, p.Source); err != nil {
			return services.Wrap(services.ErrFilesystem, stageUndo, "move back",
				fmt.Sprintf("%q -> %q", p.Destination, p.Source), err)
		}
		return nil
	}
}
