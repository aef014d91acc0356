package audio

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSettings tunes the circuit breaker around a provider
type BreakerSettings struct {
	// MaxConsecutiveFailures trips the breaker
	MaxConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again
	OpenTimeout time.Duration
}

// DefaultBreakerSettings trips after five failures in a row
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxConsecutiveFailures: 5,
		OpenTimeout:            60 * time.Second,
	}
}

// BreakerProvider stops calling a failing TTS provider until it recovers
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next with a circuit breaker
func NewBreakerProvider(next Provider, settings BreakerSettings, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.MaxConsecutiveFailures == 0 {
		settings.MaxConsecutiveFailures = DefaultBreakerSettings().MaxConsecutiveFailures
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    next.Name(),
		Timeout: settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			// a canceled run says nothing about the provider's health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("TTS circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &BreakerProvider{next: next, cb: cb}
}

// GenerateAudio calls the wrapped provider unless the breaker is open, in
// which case gobreaker.ErrOpenState is returned
func (p *BreakerProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.GenerateAudio(ctx, text, outputFile)
	})
	return err
}

// Name returns the wrapped provider name
func (p *BreakerProvider) Name() string {
	return p.next.Name()
}

// IsAvailable reports the breaker as unavailable while it is open
func (p *BreakerProvider) IsAvailable() error {
	if p.cb.State() == gobreaker.StateOpen {
		return gobreaker.ErrOpenState
	}
	return p.next.IsAvailable()
}
