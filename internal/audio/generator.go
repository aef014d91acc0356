package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"codeberg.org/snonux/spellbee/internal/player"
	"codeberg.org/snonux/spellbee/internal/words"
)

// LockFileName is created in the audio root while a generator runs
const LockFileName = ".spellbee-generate.lock"

// ErrLocked is returned when another generator holds the audio root
var ErrLocked = errors.New("another audio generation is already running")

// GeneratorOptions configures a Generator
type GeneratorOptions struct {
	AudioRoot  string
	Format     string        // file extension without the dot
	Force      bool          // regenerate files that already exist
	MaxRetries int           // attempts per word
	RetryDelay time.Duration // first backoff, doubled per retry
	Pause      time.Duration // pause after each generated word
	Output     io.Writer     // progress lines, os.Stdout when nil
}

// DefaultGeneratorOptions mirrors the settings the word audio was produced with
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		AudioRoot:  "audio",
		Format:     "mp3",
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Pause:      500 * time.Millisecond,
	}
}

// Stats summarizes a generation run
type Stats struct {
	Generated int
	Skipped   int
	Failed    int
}

// Add accumulates another run
func (s *Stats) Add(other Stats) {
	s.Generated += other.Generated
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Total is the number of audio files present after the run
func (s Stats) Total() int {
	return s.Generated + s.Skipped
}

// Generator produces one audio file per word of a tier
type Generator struct {
	provider Provider
	opts     GeneratorOptions
	assets   player.Assets
	logger   *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewGenerator creates a generator writing below opts.AudioRoot
func NewGenerator(provider Provider, opts GeneratorOptions, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.Format == "" {
		opts.Format = "mp3"
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Generator{
		provider: provider,
		opts:     opts,
		assets:   player.Assets{Root: opts.AudioRoot, Ext: opts.Format},
		logger:   logger,
		sleep:    sleepContext,
	}
}

// Lock takes an exclusive file lock on the audio root. The returned
// function releases it.
func (g *Generator) Lock() (func(), error) {
	if err := os.MkdirAll(g.opts.AudioRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	lock := flock.New(filepath.Join(g.opts.AudioRoot, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock audio directory: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			g.logger.Warn("Failed to release generator lock", zap.Error(err))
		}
	}, nil
}

// OutputPath returns where the audio of word in tier is written
func (g *Generator) OutputPath(tier words.Tier, word string) string {
	return g.assets.Path(tier, word)
}

// GenerateTier generates the audio of every record. Existing files are
// skipped unless Force is set. Individual failures are counted and do not
// stop the run; an open circuit breaker or a canceled context does, and the
// remaining words are counted as failed.
func (g *Generator) GenerateTier(ctx context.Context, tier words.Tier, recs []words.WordRecord) (Stats, error) {
	var stats Stats
	total := len(recs)

	g.logger.Info("Generating tier audio",
		zap.String("tier", string(tier)),
		zap.Int("words", total),
		zap.String("provider", g.provider.Name()))

	for i, rec := range recs {
		pos := i + 1
		output := g.OutputPath(tier, rec.Word)

		if !g.opts.Force && fileExists(output) {
			fmt.Fprintf(g.opts.Output, "[%s] [%3d/%d] ⏭️  Skipping '%s' (already exists)\n", tier, pos, total, rec.Word)
			stats.Skipped++
			continue
		}

		fmt.Fprintf(g.opts.Output, "[%s] [%3d/%d] 🔊 Generating '%s' → %s\n", tier, pos, total, rec.Word, filepath.Base(output))
		if err := g.generateWithRetry(ctx, tier, pos, rec, output); err != nil {
			stats.Failed++
			if errors.Is(err, gobreaker.ErrOpenState) || ctx.Err() != nil {
				stats.Failed += total - i - 1
				return stats, fmt.Errorf("tier %s aborted: %w", tier, err)
			}
			fmt.Fprintf(g.opts.Output, "[%s] [%3d/%d] ❌ Failed '%s' after %d attempts: %v\n", tier, pos, total, rec.Word, g.opts.MaxRetries, err)
			continue
		}

		stats.Generated++
		if err := g.sleep(ctx, g.opts.Pause); err != nil {
			stats.Failed += total - i - 1
			return stats, fmt.Errorf("tier %s aborted: %w", tier, err)
		}
	}

	return stats, nil
}

func (g *Generator) generateWithRetry(ctx context.Context, tier words.Tier, pos int, rec words.WordRecord, output string) error {
	delay := g.opts.RetryDelay

	var err error
	for attempt := 1; attempt <= g.opts.MaxRetries; attempt++ {
		err = g.provider.GenerateAudio(ctx, rec.Word, output)
		if err == nil {
			return nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || ctx.Err() != nil {
			return err
		}

		g.logger.Warn("Audio generation attempt failed",
			zap.String("tier", string(tier)),
			zap.String("word", rec.Word),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < g.opts.MaxRetries {
			fmt.Fprintf(g.opts.Output, "[%s] [%3d] 🔄 Retrying '%s' in %s (attempt %d/%d)\n", tier, pos, rec.Word, delay, attempt+1, g.opts.MaxRetries)
			if serr := g.sleep(ctx, delay); serr != nil {
				return serr
			}
			delay *= 2
		}
	}

	return err
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
