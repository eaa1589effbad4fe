// Package main hosts the pacerename CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, applies flag overrides, and
// hands off to the internal packages: organizer for run and undo, naming for
// resolve, preflight for check, and history for the placement ledger. Per-file
// action lines go to stdout; structured logs go to stderr and the state
// directory log file.
package main
