package processor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/spellbee/internal/archive"
	"codeberg.org/snonux/spellbee/internal/audio"
)

// GenerateAudio produces the missing pronunciations of one or all tiers.
// With force the existing tier directories are archived first and every
// word is regenerated.
func (p *Processor) GenerateAudio(ctx context.Context, tier string, force bool) (audio.Stats, error) {
	var total audio.Stats

	store, err := p.LoadStore(ctx)
	if err != nil {
		return total, err
	}
	tiers, err := selectTiers(store, tier)
	if err != nil {
		return total, err
	}

	provider, err := p.newProvider(ctx)
	if err != nil {
		return total, err
	}

	opts := p.genOpts
	opts.Force = force
	opts.Output = p.out
	gen := audio.NewGenerator(provider, opts, p.logger)

	unlock, err := gen.Lock()
	if err != nil {
		return total, err
	}
	defer unlock()

	for _, t := range tiers {
		if force && t != "" {
			archived, err := archive.ArchiveTier(opts.AudioRoot, string(t))
			if err != nil {
				return total, fmt.Errorf("failed to archive tier %s: %w", t, err)
			}
			if archived != "" {
				fmt.Fprintf(p.out, "📦 Archived existing %s audio to %s\n", t, archived)
			}
		}

		recs, err := store.Words(t)
		if err != nil {
			return total, err
		}

		stats, err := gen.GenerateTier(ctx, t, recs)
		total.Add(stats)
		p.printStats(tierName(t), stats)
		if err != nil {
			p.logger.Error("Audio generation aborted", zap.String("tier", string(t)), zap.Error(err))
			return total, err
		}
	}

	if len(tiers) > 1 {
		p.printStats("all tiers", total)
	}
	return total, nil
}

func (p *Processor) printStats(label string, s audio.Stats) {
	fmt.Fprintf(p.out, "\n=== Audio Generation Summary (%s) ===\n", label)
	fmt.Fprintf(p.out, "Generated: %d\n", s.Generated)
	fmt.Fprintf(p.out, "Skipped (already present): %d\n", s.Skipped)
	if s.Failed > 0 {
		fmt.Fprintf(p.out, "Failed: %d\n", s.Failed)
	}
	fmt.Fprintf(p.out, "Total audio files: %d\n", s.Total())
}
