package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"pacerename/internal/config"
	"pacerename/internal/fileutil"
	"pacerename/internal/history"
	"pacerename/internal/logging"
	"pacerename/internal/naming"
	"pacerename/internal/placement"
	"pacerename/internal/services"
)

const (
	stageDiscover = "discover"
	stagePlan     = "plan"
	stageApply    = "apply"
	stageLock     = "lock"
	stageUndo     = "undo"
	stageRefresh  = "refresh"
)

var (
	// ErrDestinationExists marks a destination already present on disk.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrDuplicateDestination marks a destination claimed by an earlier file in the same plan.
	ErrDuplicateDestination = errors.New("destination claimed by another file")
	// ErrUnknownMode marks a placement mode Apply cannot perform.
	ErrUnknownMode = errors.New("unknown placement mode")
)

// Organizer plans and applies placements for one configuration.
type Organizer struct {
	cfg        *config.Config
	resolver   *naming.Resolver
	history    *history.Store
	refreshers []Refresher
	logger     *slog.Logger
}

// Report is the outcome of a run.
type Report struct {
	RunID     string
	DryRun    bool
	Plan      *Plan
	Summary   Summary
	Refreshed []string
}

// New constructs an organizer without history or library refresh.
func New(cfg *config.Config, resolver *naming.Resolver, logger *slog.Logger) *Organizer {
	return NewWithDependencies(cfg, resolver, logger, nil)
}

// NewWithDependencies allows injecting the history store and refreshers. A nil
// store disables history recording.
func NewWithDependencies(cfg *config.Config, resolver *naming.Resolver, logger *slog.Logger, store *history.Store, refreshers ...Refresher) *Organizer {
	return &Organizer{
		cfg:        cfg,
		resolver:   resolver,
		history:    store,
		refreshers: refreshers,
		logger:     logging.NewComponentLogger(logger, "organizer"),
	}
}

// Run plans files and, unless dryRun is set, applies the plan under the run
// lock. The returned error is non-nil only when the run could not start or was
// cancelled; per-file failures are reported in the plan entries.
func (o *Organizer) Run(ctx context.Context, files []string, dryRun bool) (*Report, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)

	if !dryRun {
		lock, err := acquireLock(o.cfg.LockPath())
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release run lock", logging.Error(err))
			}
		}()
	}

	logger.Info("run started",
		logging.Int("files", len(files)),
		logging.String("mode", o.cfg.Organize.Mode),
		logging.Bool("dry_run", dryRun),
	)

	plan, err := o.Plan(ctx, files)
	if err != nil {
		return nil, err
	}
	report := &Report{RunID: runID, DryRun: dryRun, Plan: plan}

	var applyErr error
	if !dryRun {
		applyErr = o.Apply(ctx, plan)
	}
	report.Summary = Summarize(plan.Entries)

	if !dryRun && report.Summary.Placed > 0 {
		report.Refreshed = o.refresh(ctx)
	}

	logger.Info("run finished",
		logging.Int("placed", report.Summary.Placed),
		logging.Int("skipped", report.Summary.Skipped),
		logging.Int("failed", report.Summary.Failed),
		logging.Int("planned", report.Summary.Pending),
	)
	return report, applyErr
}

// Plan resolves every file to a destination without touching the filesystem.
// The target root is listed once for the whole batch.
func (o *Organizer) Plan(ctx context.Context, files []string) (*Plan, error) {
	var index *placement.Index
	if !o.cfg.InPlace() {
		target := o.cfg.Paths.TargetDir
		idx, err := placement.NewIndex(target)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, stagePlan, "index target",
				fmt.Sprintf("target directory %q", target), err)
		}
		index = idx
	}

	plan := &Plan{Mode: o.cfg.Organize.Mode, Entries: make([]Entry, 0, len(files))}
	claimed := make(map[string]string, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry := o.planFile(index, file)
		if entry.Status != StatusFailed {
			if first, ok := claimed[entry.Destination]; ok {
				entry.fail(services.Wrap(services.ErrConflict, stagePlan, "claim destination",
					fmt.Sprintf("%q is also the destination of %q", entry.Destination, first), ErrDuplicateDestination))
			} else {
				claimed[entry.Destination] = entry.Source
			}
		}
		if entry.Status == StatusFailed {
			o.logFailure(ctx, entry)
		}
		plan.Entries = append(plan.Entries, entry)
	}
	return plan, nil
}

func (o *Organizer) planFile(index *placement.Index, file string) Entry {
	source := file
	if abs, err := filepath.Abs(file); err == nil {
		source = abs
	}
	entry := Entry{Source: source}

	resolved, err := o.resolver.Resolve(source)
	if err != nil {
		entry.fail(err)
		return entry
	}
	entry.Arc = resolved.Arc
	entry.Kind = resolved.Kind

	if index == nil {
		entry.Destination = filepath.Join(filepath.Dir(source), resolved.FileName)
	} else {
		dst, err := index.Resolve(resolved.Arc, resolved.FileName)
		if err != nil {
			entry.fail(err)
			return entry
		}
		entry.Destination = dst
	}

	o.checkDestination(&entry)
	return entry
}

// checkDestination marks entries whose destination is the source as skipped
// and existing destinations as conflicts unless overwriting is enabled.
func (o *Organizer) checkDestination(entry *Entry) {
	entry.Replaced = false
	if entry.Destination == entry.Source || fileutil.SameFile(entry.Source, entry.Destination) {
		entry.Status = StatusSkipped
		return
	}
	exists, err := fileutil.Exists(entry.Destination)
	if err != nil {
		entry.fail(services.Wrap(services.ErrFilesystem, stagePlan, "stat destination", entry.Destination, err))
		return
	}
	if !exists {
		entry.Status = StatusPending
		return
	}
	if !o.cfg.Organize.OverwriteExisting {
		entry.fail(services.Wrap(services.ErrConflict, stagePlan, "check destination", entry.Destination, ErrDestinationExists))
		return
	}
	entry.Status = StatusPending
	entry.Replaced = true
}

// Apply performs every pending entry in order. It stops before the next file
// when ctx is cancelled, or after a failure that is not isolated to one file,
// and returns that error.
func (o *Organizer) Apply(ctx context.Context, plan *Plan) error {
	for idx := range plan.Entries {
		entry := &plan.Entries[idx]
		if entry.Status != StatusPending {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		o.checkDestination(entry)
		if entry.Status == StatusPending {
			if err := o.place(plan.Mode, entry); err != nil {
				entry.fail(err)
				if !services.Recoverable(err) {
					o.logFailure(ctx, *entry)
					return err
				}
			} else {
				entry.Status = StatusPlaced
				o.record(ctx, plan.Mode, *entry)
			}
		}

		switch entry.Status {
		case StatusFailed:
			o.logFailure(ctx, *entry)
		case StatusPlaced:
			logging.WithContext(services.WithFile(ctx, filepath.Base(entry.Source)), o.logger).Info("file placed",
				logging.String(logging.FieldArc, entry.Arc),
				logging.String("destination", entry.Destination),
				logging.Bool("replaced", entry.Replaced),
			)
		}
	}
	return nil
}

func (o *Organizer) place(mode string, entry *Entry) error {
	src, dst := entry.Source, entry.Destination
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return services.Wrap(services.ErrFilesystem, stageApply, "create directory", filepath.Dir(dst), err)
	}

	var err error
	switch mode {
	case config.ModeHardlink:
		if entry.Replaced {
			if err := fileutil.RemoveFile(dst); err != nil {
				return services.Wrap(services.ErrFilesystem, stageApply, "replace destination", dst, err)
			}
		}
		err = fileutil.LinkFile(src, dst)
	case config.ModeCopy:
		if entry.Replaced {
			if err := fileutil.RemoveFile(dst); err != nil {
				return services.Wrap(services.ErrFilesystem, stageApply, "replace destination", dst, err)
			}
		}
		err = fileutil.CopyFileVerified(src, dst)
	case config.ModeMove:
		err = fileutil.MoveFile(src, dst)
	default:
		return services.Wrap(services.ErrConfiguration, stageApply, "place", fmt.Sprintf("unknown mode %q", mode), ErrUnknownMode)
	}
	if err != nil {
		return services.Wrap(services.ErrFilesystem, stageApply, mode, fmt.Sprintf("%q -> %q", src, dst), err)
	}
	return nil
}

func (o *Organizer) record(ctx context.Context, mode string, entry Entry) {
	if o.history == nil || !o.cfg.Organize.History {
		return
	}
	runID, _ := services.RunIDFromContext(ctx)
	_, err := o.history.Record(ctx, history.Placement{
		RunID:       runID,
		Mode:        mode,
		Source:      entry.Source,
		Destination: entry.Destination,
		Arc:         entry.Arc,
		Kind:        entry.Kind.String(),
		Replaced:    entry.Replaced,
	})
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, o.logger), "history record failed", logging.Problem{
			Event:  "history_write_failed",
			Err:    err,
			Hint:   "check that the state directory is writable",
			Impact: "this placement cannot be undone",
		}, logging.String("destination", entry.Destination))
	}
}

func (o *Organizer) logFailure(ctx context.Context, entry Entry) {
	logger := logging.WithContext(services.WithFile(ctx, filepath.Base(entry.Source)), o.logger)
	logging.WarnWithContext(logger, "file skipped", logging.Problem{
		Event:  "file_failed",
		Err:    entry.Err,
		Hint:   hintFor(services.Category(entry.Err)),
		Impact: "file left in place",
	})
}

func hintFor(category string) string {
	switch category {
	case "unrecognized":
		return "file name does not follow a One Pace release pattern"
	case "missing_reference":
		return "update the reference tables with the missing entry"
	case "placement":
		return "make sure exactly one directory under the target root contains the arc name"
	case "conflict":
		return "remove the existing destination or enable overwrite_existing"
	default:
		return "check permissions and free space on the source and target"
	}
}
