// Package preflight provides readiness checks for the directories, reference
// tables, and media servers a rename run depends on.
//
// The CLI "pacerename check" command runs RunAll and prints one status line per
// result. Optional checks (the chapter and cover-page tables, arc coverage)
// report warnings rather than errors because a run still succeeds for files
// that do not need them. Server checks are gated by their config toggle.
package preflight
