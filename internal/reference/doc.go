// Package reference loads the static lookup tables that drive name resolution.
//
// Three tables exist: the episode mapping (arc → per-arc number → canonical
// number), the chapter mapping (chapter range → per-arc Dressrosa number), and
// the cover-page mapping (release title → arc and per-arc number). They are
// read once into an immutable Tables value that callers pass explicitly to the
// resolver; nothing in this package holds package-level state.
//
// JSON is the native format. Files ending in .yaml or .yml are decoded as YAML
// with the same shape.
package reference
