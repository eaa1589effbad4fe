package organizer

import (
	"fmt"

	"pacerename/internal/config"
	"pacerename/internal/naming"
	"pacerename/internal/services"
)

// Status is the state of one planned file.
type Status int

const (
	// StatusPending entries resolved and are ready to apply.
	StatusPending Status = iota
	StatusPlaced
	// StatusSkipped entries already sit at their destination.
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPlaced:
		return "placed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is the plan and outcome for one source file.
type Entry struct {
	Source      string
	Destination string
	Arc         string
	Kind        naming.Kind
	Status      Status
	// Replaced is set when an existing destination was overwritten.
	Replaced bool
	Err      error
}

// Category returns the failure category label, or "" for entries that did
// not fail.
func (e Entry) Category() string {
	if e.Status != StatusFailed {
		return ""
	}
	return services.Category(e.Err)
}

func (e *Entry) fail(err error) {
	e.Status = StatusFailed
	e.Err = err
}

// Plan is an ordered list of entries for one mode.
type Plan struct {
	Mode    string
	Entries []Entry
}

// Pending returns the number of entries still waiting to be applied.
func (p *Plan) Pending() int {
	count := 0
	for _, entry := range p.Entries {
		if entry.Status == StatusPending {
			count++
		}
	}
	return count
}

// ActionLabel returns the console verb for a completed placement in mode.
func ActionLabel(mode string) string {
	switch mode {
	case config.ModeHardlink:
		return "LINKED"
	case config.ModeCopy:
		return "COPIED"
	default:
		return "MOVED"
	}
}

// FormatEntry renders the console line for entry. Pending entries print as
// dry-run pairs.
func FormatEntry(mode string, entry Entry) string {
	switch entry.Status {
	case StatusPending:
		return fmt.Sprintf("DRYRUN: %q -> %q", entry.Source, entry.Destination)
	case StatusPlaced:
		return fmt.Sprintf("%s: %q -> %q", ActionLabel(mode), entry.Source, entry.Destination)
	case StatusSkipped:
		return fmt.Sprintf("SKIP: %q already organized", entry.Source)
	default:
		return fmt.Sprintf("ERROR: %q: %v", entry.Source, entry.Err)
	}
}
