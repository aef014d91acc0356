package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/spellbee/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spellbee",
		Short: "Spelling Bee Study Aid",
		Long: `spellbee helps students practice spelling bee word lists.

Words are shown masked, one card per word, grouped by difficulty tier.
Each card can be revealed, hidden again and pronounced from pre-generated
audio files.

Examples:
  spellbee                             # Launch the study GUI (default)
  spellbee list --tier 3B              # Print the words of a tier
  spellbee import words.txt --tier 3B  # Turn a word list into words_3B.json
  spellbee generate-audio --tier 3B    # Generate missing pronunciations
  spellbee verify --missing            # Report words without audio`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.spellbee.yaml)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose development logging")

	pf.StringVarP(&flags.DataDir, "data", "d", flags.DataDir, "Directory holding the words_<tier>.json lists")
	pf.StringVar(&flags.DataURL, "data-url", "", "Base URL to fetch the word lists from instead of --data")
	pf.StringVarP(&flags.AudioDir, "audio-dir", "a", flags.AudioDir, "Directory holding the <tier>/<word>.mp3 pronunciations")
	pf.StringSliceVar(&flags.Tiers, "tiers", flags.Tiers, "Tiers in display order")
	pf.BoolVar(&flags.SingleList, "single", false, "Use a single words.json list without tiers")
	pf.StringVar(&flags.NewWordsTier, "new-words", "", "Tier whose new_words_<tier>.json marks recently added words")

	pf.StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (mp3 or wav)")
	pf.StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "TTS provider: openai, gemini or espeak")
	pf.StringVar(&flags.FallbackProvider, "fallback-provider", "", "TTS provider to use when the primary one fails")

	pf.StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	pf.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, nova, onyx, sage, shimmer")
	pf.Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	pf.StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts (e.g., 'pronounce slowly for a spelling bee')")

	pf.StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini TTS model")
	pf.StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice")

	bindFlagsToViper(pf)
}

var viperBindings = map[string]string{
	"data.dir":                 "data",
	"data.url":                 "data-url",
	"data.tiers":               "tiers",
	"data.single":              "single",
	"data.new_words":           "new-words",
	"audio.dir":                "audio-dir",
	"audio.format":             "format",
	"audio.provider":           "audio-provider",
	"audio.fallback":           "fallback-provider",
	"audio.openai_model":       "openai-model",
	"audio.openai_voice":       "openai-voice",
	"audio.openai_speed":       "openai-speed",
	"audio.openai_instruction": "openai-instruction",
	"audio.gemini_model":       "gemini-model",
	"audio.gemini_voice":       "gemini-voice",
}

func bindFlagsToViper(fs *pflag.FlagSet) {
	for key, name := range viperBindings {
		if flag := fs.Lookup(name); flag != nil {
			_ = viper.BindPFlag(key, flag)
		}
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".spellbee" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".spellbee")
	}

	// SPELLBEE_AUDIO_DIR overrides audio.dir
	viper.SetEnvPrefix("SPELLBEE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// LoadDotEnv loads API keys from a .env file in the working directory.
// A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.gemini_key")
}
