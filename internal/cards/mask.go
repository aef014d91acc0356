package cards

import (
	"strings"

	"github.com/rivo/uniseg"
)

// MaskRune is the filler character shown instead of a hidden word
const MaskRune = "•"

// Mask hides a word behind one filler character per perceived character.
// Grapheme clusters are counted, so "é" written as e plus a combining accent
// still produces a single filler.
func Mask(word string) string {
	return strings.Repeat(MaskRune, GlyphCount(word))
}

// GlyphCount returns the number of user-perceived characters in word
func GlyphCount(word string) int {
	return uniseg.GraphemeClusterCount(word)
}
