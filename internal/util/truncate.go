package util

import "unicode/utf8"

// TruncateRunes shortens s to at most n bytes, backing up so the cut
// never lands inside a multi-byte rune.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
