package processor

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"

	"codeberg.org/snonux/spellbee/internal"
	"codeberg.org/snonux/spellbee/internal/batch"
	"codeberg.org/snonux/spellbee/internal/words"
)

// ListWords prints the words of one or all tiers with their audio status
func (p *Processor) ListWords(ctx context.Context, tier string) error {
	store, err := p.LoadStore(ctx)
	if err != nil {
		return err
	}

	tiers, err := selectTiers(store, tier)
	if err != nil {
		return err
	}

	assets := p.assets()
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tier", "ID", "Word", "Audio", "New"})

	for _, tr := range tiers {
		recs, err := store.Words(tr)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			audioMark := "✗"
			if fileExists(assets.Path(tr, rec.Word)) {
				audioMark = "✓"
			}
			newMark := ""
			if store.IsNew(tr, rec.Word) {
				newMark = "NEW"
			}
			t.AppendRow(table.Row{tierName(tr), rec.ID, rec.Word, audioMark, newMark})
		}
		t.AppendSeparator()
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d words", countWords(store, tiers)), "", ""})
	t.Render()
	return nil
}

// SanitizeWords prints the audio file name of each word
func (p *Processor) SanitizeWords(list []string) {
	for _, w := range list {
		fmt.Fprintf(p.out, "%s\t%s.%s\n", w, internal.SanitizeFilename(w), p.flags.AudioFormat)
	}
}

// ImportWords converts a one-word-per-line text file into the word list of
// tier inside the data directory
func (p *Processor) ImportWords(file, tier string) (string, int, error) {
	list, err := batch.ReadWordFile(file)
	if err != nil {
		return "", 0, err
	}
	if len(list) == 0 {
		return "", 0, fmt.Errorf("no words found in %s", file)
	}

	path, err := batch.WriteTierDocument(p.flags.DataDir, words.Tier(tier), batch.Records(list))
	if err != nil {
		return "", 0, err
	}

	p.logger.Info("Imported word list", zap.String("file", file), zap.String("document", path), zap.Int("words", len(list)))
	fmt.Fprintf(p.out, "📝 Imported %d words into %s\n", len(list), path)
	return path, len(list), nil
}

func countWords(store *words.Store, tiers []words.Tier) int {
	n := 0
	for _, t := range tiers {
		n += store.TierCount(t)
	}
	return n
}
