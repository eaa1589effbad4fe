// Package organizer drives a rename run: it discovers release files, resolves
// each through the naming and placement resolvers, and moves, links, or copies
// them into the library.
//
// Every file is handled in isolation. A file that cannot be resolved, placed,
// or written is reported and skipped while the rest of the batch continues;
// only configuration, reference, and lock problems abort a run, and they do so
// before any file is touched. Applied placements are recorded in the history
// ledger so a run can be reversed with Undo.
package organizer
