// Package services defines shared utilities consumed by the organizer stages
// and the library integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, the file being processed, and
//     stage names for logging.
//   - Structured error markers plus the Wrap helper that classify failures into
//     the categories reported in run summaries (unrecognized filename, missing
//     reference entry, placement, conflict, filesystem).
//
// Use these helpers when wiring new stage logic so error classification and
// log fields stay uniform across a run.
package services
