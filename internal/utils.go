package internal

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// accentFolds maps the accented Latin vowels found in the word lists to
// their ASCII base letter. Anything else outside [a-z0-9_] is dropped.
var accentFolds = map[rune]rune{
	'à': 'a', 'â': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'î': 'i', 'ï': 'i',
	'ô': 'o', 'ö': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u',
}

// SanitizeFilename maps a display word to the key of its audio file.
//
// The word is lowercased, whitespace runs become a single underscore,
// apostrophes are stripped, a fixed set of accented vowels is folded to
// ASCII and every remaining rune outside [a-z0-9_] is dropped. The result
// may be empty; SanitizeFilename never fails.
func SanitizeFilename(word string) string {
	runes := []rune(strings.ToLower(word))

	var b strings.Builder
	b.Grow(len(word))

	inSpace := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false

		// A base letter followed by combining marks folds only when the
		// composed rune is one of the folded vowels. Otherwise the marks
		// are dropped and the base letter is kept.
		end := i + 1
		for end < len(runes) && unicode.Is(unicode.Mn, runes[end]) {
			end++
		}
		if end > i+1 {
			if composed, ok := composeFolded(runes[i:end]); ok {
				r = composed
			}
			i = end - 1
		}

		if folded, ok := accentFolds[r]; ok {
			r = folded
		}
		if isFilenameRune(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// composeFolded returns the NFC composition of cluster when it is a single
// rune listed in accentFolds
func composeFolded(cluster []rune) (rune, bool) {
	composed := []rune(norm.NFC.String(string(cluster)))
	if len(composed) != 1 {
		return 0, false
	}
	if _, ok := accentFolds[composed[0]]; !ok {
		return 0, false
	}
	return composed[0], true
}

// isFilenameRune reports whether r may appear in a sanitized filename
func isFilenameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}
