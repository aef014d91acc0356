package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/spellbee/internal"
	"codeberg.org/snonux/spellbee/internal/anki"
)

// ExportOptions configures an Anki export
type ExportOptions struct {
	Tier     string // empty exports every tier into one deck
	Output   string // output file, derived from the deck name when empty
	DeckName string
	CSV      bool // write a CSV import file instead of an .apkg package
}

// ExportAnki writes the words of a tier as an Anki deck and returns the
// written path
func (p *Processor) ExportAnki(ctx context.Context, opts ExportOptions) (string, error) {
	store, err := p.LoadStore(ctx)
	if err != nil {
		return "", err
	}
	tiers, err := selectTiers(store, opts.Tier)
	if err != nil {
		return "", err
	}

	deckName := opts.DeckName
	if deckName == "" {
		deckName = strings.TrimSpace("Spelling Bee " + opts.Tier)
	}

	output := opts.Output
	if output == "" {
		ext := ".apkg"
		if opts.CSV {
			ext = ".csv"
		}
		output = internal.SanitizeFilename(deckName) + ext
	}

	assets := p.assets()
	var cards []anki.Card
	withAudio := 0
	for _, t := range tiers {
		recs, err := store.Words(t)
		if err != nil {
			return "", err
		}
		for _, rec := range recs {
			card := anki.Card{Word: rec.Word, Tier: string(t)}
			if path := assets.Path(t, rec.Word); fileExists(path) {
				card.AudioFile = path
				withAudio++
			}
			cards = append(cards, card)
		}
	}

	if opts.CSV {
		gen := anki.NewGenerator(&anki.GeneratorOptions{OutputPath: output, IncludeHeaders: true})
		for _, c := range cards {
			gen.AddCard(c)
		}
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
	} else {
		gen := anki.NewAPKGGenerator(deckName)
		for _, c := range cards {
			gen.AddCard(c)
		}
		if err := gen.GenerateAPKG(output); err != nil {
			return "", fmt.Errorf("failed to generate APKG: %w", err)
		}
	}

	fmt.Fprintf(p.out, "📚 Exported %d cards (%d with audio) to %s\n", len(cards), withAudio, filepath.Clean(output))
	return output, nil
}
