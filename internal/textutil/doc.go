// Package textutil provides text processing utilities for filename
// normalization and approximate name suggestions.
//
// The primary use cases are:
//   - Normalizing filenames to Unicode NFC before exact matching
//   - Creating character trigram fingerprints from names
//   - Ranking known names by cosine similarity to produce "did you mean" hints
//
// Fingerprints use trigram frequency vectors over the lowercased, space-padded
// input so short arc names still produce enough tokens to compare.
package textutil
