package textutil

import "golang.org/x/text/unicode/norm"

// NormalizeName returns the NFC form of name. Filenames read from some
// filesystems (notably macOS shares) arrive decomposed, which would never
// compare equal to the composed keys in the reference tables.
func NormalizeName(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}
