// Package naming resolves One Pace release filenames into the canonical
// library name "One.Piece.<episode>.<resolution>.mkv".
//
// Resolution has two steps. An ordered list of rules, each a compiled pattern
// paired with an extractor, turns the filename into a tagged Match (direct arc
// episode, chapter range, or cover page); the first rule that matches wins.
// The match is then resolved against the reference tables, which it never
// mutates. Every failure is tagged with a services marker so the organizer
// can classify and skip it without aborting a batch.
package naming
