package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"codeberg.org/snonux/spellbee/internal/words"
)

// TierReport is the audio coverage of one tier
type TierReport struct {
	Tier    words.Tier
	Words   int
	Present int
	Bytes   uint64
	Missing []string
	Extra   []string // audio files no word of the tier maps to
}

// Verify audits which words of one or all tiers have a playable audio
// file and prints the result. Empty files count as missing. With
// showDetails the missing words and stray audio files are listed.
func (p *Processor) Verify(ctx context.Context, tier string, showDetails bool) ([]TierReport, error) {
	store, err := p.LoadStore(ctx)
	if err != nil {
		return nil, err
	}
	tiers, err := selectTiers(store, tier)
	if err != nil {
		return nil, err
	}

	assets := p.assets()
	reports := make([]TierReport, 0, len(tiers))
	for _, t := range tiers {
		recs, err := store.Words(t)
		if err != nil {
			return nil, err
		}

		r := TierReport{Tier: t, Words: len(recs)}
		expected := make(map[string]struct{}, len(recs))
		for _, rec := range recs {
			path := assets.Path(t, rec.Word)
			expected[filepath.Base(path)] = struct{}{}

			info, err := os.Stat(path)
			if err != nil || info.IsDir() || info.Size() == 0 {
				r.Missing = append(r.Missing, rec.Word)
				continue
			}
			r.Present++
			r.Bytes += uint64(info.Size())
		}

		r.Extra, err = extraFiles(filepath.Dir(assets.Path(t, "")), "."+assets.Ext, expected)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	p.printReports(reports, showDetails)
	return reports, nil
}

// extraFiles lists the files in dir with extension ext that are not in
// expected. A missing dir has no extras.
func extraFiles(dir, ext string, expected map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory %s: %w", dir, err)
	}

	var extra []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		if _, ok := expected[e.Name()]; !ok {
			extra = append(extra, e.Name())
		}
	}
	return extra, nil
}

func (p *Processor) printReports(reports []TierReport, showDetails bool) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tier", "Words", "Audio", "Missing", "Extra", "Coverage", "Size"})

	var sum TierReport
	for _, r := range reports {
		t.AppendRow(table.Row{tierName(r.Tier), r.Words, r.Present, len(r.Missing), len(r.Extra), coverage(r.Present, r.Words), humanize.Bytes(r.Bytes)})
		sum.Words += r.Words
		sum.Present += r.Present
		sum.Bytes += r.Bytes
		sum.Extra = append(sum.Extra, r.Extra...)
	}
	t.AppendFooter(table.Row{"Total", sum.Words, sum.Present, sum.Words - sum.Present, len(sum.Extra), coverage(sum.Present, sum.Words), humanize.Bytes(sum.Bytes)})
	t.Render()

	if !showDetails {
		return
	}
	for _, r := range reports {
		if len(r.Missing) > 0 {
			fmt.Fprintf(p.out, "\n❌ Missing audio in %s (%s):\n", tierName(r.Tier), humanize.Comma(int64(len(r.Missing))))
			fmt.Fprintf(p.out, "  %s\n", strings.Join(r.Missing, "\n  "))
		}
		if len(r.Extra) > 0 {
			fmt.Fprintf(p.out, "\n⚠️  Extra audio in %s (%s):\n", tierName(r.Tier), humanize.Comma(int64(len(r.Extra))))
			fmt.Fprintf(p.out, "  %s\n", strings.Join(r.Extra, "\n  "))
		}
	}
}

func coverage(present, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(present)*100/float64(total))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
