package cli

import (
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/spellbee/internal/words"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Verbose bool

	// Word lists and audio locations
	DataDir      string
	DataURL      string
	AudioDir     string
	Tiers        []string
	SingleList   bool
	NewWordsTier string

	// Audio generation
	AudioFormat      string
	AudioProvider    string
	FallbackProvider string

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Gemini flags
	GeminiModel string
	GeminiVoice string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	tiers := make([]string, len(words.DefaultTiers))
	for i, t := range words.DefaultTiers {
		tiers[i] = string(t)
	}

	return &Flags{
		DataDir:       "data",
		AudioDir:      "audio",
		Tiers:         tiers,
		AudioFormat:   "mp3",
		AudioProvider: "openai",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAIVoice:   "alloy",
		OpenAISpeed:   1.0,
		GeminiModel:   "gemini-2.5-flash-preview-tts",
		GeminiVoice:   "Kore",
	}
}

// Resolve overlays values from the config file and environment onto
// flags the user did not set explicitly
func (f *Flags) Resolve() {
	f.DataDir = viper.GetString("data.dir")
	f.DataURL = viper.GetString("data.url")
	f.AudioDir = viper.GetString("audio.dir")
	if tiers := viper.GetStringSlice("data.tiers"); len(tiers) > 0 {
		f.Tiers = tiers
	}
	f.SingleList = viper.GetBool("data.single")
	f.NewWordsTier = viper.GetString("data.new_words")
	f.AudioFormat = viper.GetString("audio.format")
	f.AudioProvider = viper.GetString("audio.provider")
	f.FallbackProvider = viper.GetString("audio.fallback")
	f.OpenAIModel = viper.GetString("audio.openai_model")
	f.OpenAIVoice = viper.GetString("audio.openai_voice")
	f.OpenAISpeed = viper.GetFloat64("audio.openai_speed")
	f.OpenAIInstruction = viper.GetString("audio.openai_instruction")
	f.GeminiModel = viper.GetString("audio.gemini_model")
	f.GeminiVoice = viper.GetString("audio.gemini_voice")
}

// Layout returns the word layout selected by the flags
func (f *Flags) Layout() words.Layout {
	layout := words.SingleTierLayout()
	if !f.SingleList {
		layout = words.Layout{}
		for _, t := range f.Tiers {
			if t = strings.TrimSpace(t); t != "" {
				layout.Tiers = append(layout.Tiers, words.Tier(t))
			}
		}
	}

	if f.NewWordsTier != "" {
		tier := words.Tier(f.NewWordsTier)
		layout.NewWords = &words.Attachment{Tier: tier, Document: words.NewWordsDocumentName(tier)}
	}

	return layout
}

// DataLocation is the URL of the word lists when set, the directory otherwise
func (f *Flags) DataLocation() string {
	if f.DataURL != "" {
		return f.DataURL
	}
	return f.DataDir
}
