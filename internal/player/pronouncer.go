package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/spellbee/internal"
	"codeberg.org/snonux/spellbee/internal/words"
)

// DefaultErrorDelay is how long the "no audio" label stays up
const DefaultErrorDelay = 2 * time.Second

// ErrNoAudio is returned when a word has no audio file
var ErrNoAudio = errors.New("no audio file")

// Backend plays an audio file and returns once playback has finished
type Backend interface {
	Play(ctx context.Context, path string) error
}

// Assets resolves the audio file of a word
type Assets struct {
	Root string
	Ext  string // without the dot, defaults to mp3
}

// Path returns <root>/<tier>/<sanitized>.<ext>, or <root>/<sanitized>.<ext>
// for the single-tier layout
func (a Assets) Path(tier words.Tier, word string) string {
	ext := a.Ext
	if ext == "" {
		ext = "mp3"
	}
	name := internal.SanitizeFilename(word) + "." + ext
	if tier == "" {
		return filepath.Join(a.Root, name)
	}
	return filepath.Join(a.Root, string(tier), name)
}

// Pronouncer plays word pronunciations and drives the play controls
type Pronouncer struct {
	assets     Assets
	backend    Backend
	errorDelay time.Duration
	logger     *zap.Logger
	wg         sync.WaitGroup
}

// Option configures a Pronouncer
type Option func(*Pronouncer)

// WithErrorDelay overrides how long the "no audio" label is shown
func WithErrorDelay(d time.Duration) Option {
	return func(p *Pronouncer) {
		p.errorDelay = d
	}
}

// WithLogger sets the logger used for playback failures
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pronouncer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pronouncer
func New(assets Assets, backend Backend, opts ...Option) *Pronouncer {
	p := &Pronouncer{
		assets:     assets,
		backend:    backend,
		errorDelay: DefaultErrorDelay,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play starts the pronunciation of word in the background. The control is
// disabled while playing and restored afterwards; on failure it shows the
// "no audio" label for the error delay first. Play returns false when the
// control is already busy.
func (p *Pronouncer) Play(ctx context.Context, tier words.Tier, word string, ctrl *Control) bool {
	if !ctrl.acquire() {
		return false
	}

	path := p.assets.Path(tier, word)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if err := p.play(ctx, path); err != nil {
			p.logger.Warn("Audio playback failed",
				zap.String("word", word),
				zap.String("tier", string(tier)),
				zap.String("path", path),
				zap.Error(err))
			ctrl.showNoAudio()
			p.holdNoAudio(ctx)
		}
		ctrl.reset()
	}()

	return true
}

// holdNoAudio keeps the "no audio" label up for the error delay, or until
// ctx is done
func (p *Pronouncer) holdNoAudio(ctx context.Context) {
	timer := time.NewTimer(p.errorDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Wait blocks until every started playback has released its control
func (p *Pronouncer) Wait() {
	p.wg.Wait()
}

func (p *Pronouncer) play(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoAudio, path)
	}
	if info.IsDir() || info.Size() == 0 {
		return fmt.Errorf("%w: %s is not a playable file", ErrNoAudio, path)
	}
	return p.backend.Play(ctx, path)
}
