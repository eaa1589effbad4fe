// Package history records applied placements in a SQLite ledger so runs can be
// listed and reversed.
//
// The database lives at <state_dir>/history.db. A schema_version row guards
// against opening a ledger written by an incompatible build.
package history
