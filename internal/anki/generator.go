package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/spellbee/internal"
)

// Card is one spelling note: the learner hears the audio and spells the word
type Card struct {
	Word      string // the spelling shown on the back
	Tier      string // difficulty tier, empty for a single list
	AudioFile string // path to the pronunciation, optional
}

// MediaName returns the unique name of the card's audio inside a package
func (c Card) MediaName() string {
	if c.AudioFile == "" {
		return ""
	}
	name := internal.SanitizeFilename(c.Word) + strings.ToLower(filepath.Ext(c.AudioFile))
	if c.Tier == "" {
		return name
	}
	return c.Tier + "_" + name
}

// GeneratorOptions configures the CSV export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki CSV import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new CSV generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{options: options}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateCSV writes Spelling, Audio and Tier columns. Audio files are
// referenced by name and must be copied into Anki's media folder separately.
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write([]string{"Spelling", "Audio", "Tier"}); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		if err := writer.Write([]string{card.Word, soundField(card.MediaName()), card.Tier}); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

// soundField formats an audio reference the way Anki expects
func soundField(mediaName string) string {
	if mediaName == "" {
		return ""
	}
	return fmt.Sprintf("[sound:%s]", mediaName)
}
