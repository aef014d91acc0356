//go:build property

package cards

import (
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"codeberg.org/snonux/spellbee/internal/words"
)

func TestMaskProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("mask length equals glyph count", prop.ForAll(
		func(word string) bool {
			return utf8.RuneCountInString(Mask(word)) == GlyphCount(word)
		},
		gen.AnyString(),
	))

	properties.Property("glyph count never exceeds rune count", prop.ForAll(
		func(word string) bool {
			return GlyphCount(word) <= utf8.RuneCountInString(word)
		},
		gen.AnyString(),
	))

	properties.Property("toggleAll reveals then hides every card", prop.ForAll(
		func(list []string) bool {
			recs := make([]words.WordRecord, len(list))
			for i, w := range list {
				recs[i] = words.WordRecord{ID: i + 1, Word: w}
			}
			store, err := words.NewStore(words.SingleTierLayout(), map[words.Tier][]words.WordRecord{"": recs}, nil)
			if err != nil {
				return false
			}
			deck, err := Render(store, "")
			if err != nil {
				return false
			}

			if deck.ToggleAll() != AllRevealed {
				return false
			}
			for _, c := range deck.Cards() {
				if c.State() != Revealed {
					return false
				}
			}
			if deck.ToggleAll() != AllHidden {
				return false
			}
			for _, c := range deck.Cards() {
				if c.State() != Masked || c.Display() != Mask(c.Word()) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
