package textutil

import "sort"

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Closest returns the candidate most similar to target, provided its score is
// at least threshold. Ties resolve to the lexicographically smaller candidate
// so suggestions are stable across map iteration order.
func Closest(target string, candidates []string, threshold float64) (string, float64, bool) {
	fp := NewFingerprint(target)
	if fp == nil || len(candidates) == 0 {
		return "", 0, false
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best := ""
	bestScore := 0.0
	for _, candidate := range sorted {
		score := CosineSimilarity(fp, NewFingerprint(candidate))
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best == "" || bestScore < threshold {
		return "", bestScore, false
	}
	return best, bestScore, true
}
