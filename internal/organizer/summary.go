package organizer

import (
	"fmt"
	"sort"
	"strings"
)

// Summary counts entries by outcome.
type Summary struct {
	Total   int
	Pending int
	Placed  int
	Skipped int
	Failed  int
	// ByCategory counts failed entries per services.Category label.
	ByCategory map[string]int
}

// Summarize tallies entries.
func Summarize(entries []Entry) Summary {
	summary := Summary{Total: len(entries), ByCategory: map[string]int{}}
	for _, entry := range entries {
		switch entry.Status {
		case StatusPending:
			summary.Pending++
		case StatusPlaced:
			summary.Placed++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
			summary.ByCategory[entry.Category()]++
		}
	}
	return summary
}

// String renders the summary line printed after a run.
func (s Summary) String() string {
	parts := []string{fmt.Sprintf("%d files", s.Total)}
	if s.Pending > 0 {
		parts = append(parts, fmt.Sprintf("%d planned", s.Pending))
	}
	parts = append(parts,
		fmt.Sprintf("%d placed", s.Placed),
		fmt.Sprintf("%d skipped", s.Skipped),
		fmt.Sprintf("%d failed", s.Failed),
	)
	line := "Summary: " + strings.Join(parts, ", ")
	if len(s.ByCategory) == 0 {
		return line
	}
	keys := make([]string, 0, len(s.ByCategory))
	for key := range s.ByCategory {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	details := make([]string, 0, len(keys))
	for _, key := range keys {
		details = append(details, fmt.Sprintf("%s=%d", key, s.ByCategory[key]))
	}
	return line + " (" + strings.Join(details, " ") + ")"
}
