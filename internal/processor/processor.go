package processor

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"codeberg.org/snonux/spellbee/internal/audio"
	"codeberg.org/snonux/spellbee/internal/cli"
	"codeberg.org/snonux/spellbee/internal/gui"
	"codeberg.org/snonux/spellbee/internal/models"
	"codeberg.org/snonux/spellbee/internal/player"
	"codeberg.org/snonux/spellbee/internal/words"
)

// Processor runs the spellbee commands
type Processor struct {
	flags  *cli.Flags
	logger *zap.Logger
	out    io.Writer

	genOpts     audio.GeneratorOptions
	newProvider func(ctx context.Context) (audio.Provider, error)
}

// NewProcessor creates a processor for the resolved flags
func NewProcessor(flags *cli.Flags, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := audio.DefaultGeneratorOptions()
	opts.AudioRoot = flags.AudioDir
	opts.Format = flags.AudioFormat

	p := &Processor{
		flags:   flags,
		logger:  logger,
		out:     os.Stdout,
		genOpts: opts,
	}
	p.newProvider = p.buildProvider
	return p
}

// LoadStore loads every word list of the configured layout
func (p *Processor) LoadStore(ctx context.Context) (*words.Store, error) {
	src := words.NewSource(p.flags.DataLocation())
	return words.Load(ctx, src, p.flags.Layout(), p.logger)
}

func (p *Processor) assets() player.Assets {
	return player.Assets{Root: p.flags.AudioDir, Ext: p.flags.AudioFormat}
}

// selectTiers returns all tiers of the store for an empty tier, else the
// named tier if the store has it
func selectTiers(store *words.Store, tier string) ([]words.Tier, error) {
	if tier == "" {
		return store.Tiers(), nil
	}
	if !store.HasTier(words.Tier(tier)) {
		return nil, fmt.Errorf("tier %q: %w", tier, words.ErrUnknownTier)
	}
	return []words.Tier{words.Tier(tier)}, nil
}

// tierName is the printable name of a tier
func tierName(t words.Tier) string {
	if t == "" {
		return "-"
	}
	return string(t)
}

// buildProvider creates the configured TTS provider, optionally with a
// fallback, behind a circuit breaker
func (p *Processor) buildProvider(ctx context.Context) (audio.Provider, error) {
	provider, err := audio.NewProvider(ctx, p.flags.ProviderConfig(p.flags.AudioProvider))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", p.flags.AudioProvider, err)
	}

	if p.flags.FallbackProvider != "" {
		fallback, err := audio.NewProvider(ctx, p.flags.ProviderConfig(p.flags.FallbackProvider))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s fallback provider: %w", p.flags.FallbackProvider, err)
		}
		provider = audio.NewProviderWithFallback(provider, fallback, p.logger)
	}

	if err := provider.IsAvailable(); err != nil {
		return nil, fmt.Errorf("audio provider not available: %w", err)
	}

	return audio.NewBreakerProvider(provider, audio.DefaultBreakerSettings(), p.logger), nil
}

// ListModels prints the OpenAI TTS models available to the API key
func (p *Processor) ListModels(ctx context.Context) error {
	return models.NewLister(cli.GetOpenAIKey()).ListAvailableModels(ctx, p.out)
}

// RunGUIMode launches the study GUI
func (p *Processor) RunGUIMode() error {
	app := gui.New(&gui.Config{
		DataLocation: p.flags.DataLocation(),
		Layout:       p.flags.Layout(),
		AudioDir:     p.flags.AudioDir,
		AudioFormat:  p.flags.AudioFormat,
		Logger:       p.logger,
	})
	app.Run()

	return nil
}
