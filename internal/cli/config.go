package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"codeberg.org/snonux/spellbee/internal/audio"
)

// NewLogger returns a console development logger when verbose is set and
// a production logger that only reports warnings otherwise
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// ProviderConfig builds the TTS configuration for provider
func (f *Flags) ProviderConfig(provider string) *audio.Config {
	config := audio.DefaultProviderConfig()
	config.Provider = provider
	config.OutputFormat = f.AudioFormat
	config.OpenAIKey = GetOpenAIKey()
	config.GeminiKey = GetGeminiKey()

	if f.OpenAIModel != "" {
		config.OpenAIModel = f.OpenAIModel
	}
	if f.OpenAIVoice != "" {
		config.OpenAIVoice = f.OpenAIVoice
	}
	if f.OpenAISpeed > 0 {
		config.OpenAISpeed = f.OpenAISpeed
	}
	config.OpenAIInstruction = f.OpenAIInstruction
	if f.GeminiModel != "" {
		config.GeminiModel = f.GeminiModel
	}
	if f.GeminiVoice != "" {
		config.GeminiVoice = f.GeminiVoice
	}

	return config
}
