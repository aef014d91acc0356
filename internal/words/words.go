package words

import (
	"encoding/json"
	"fmt"
)

// Tier identifies a difficulty group. The empty tier is used by the
// single-list layout.
type Tier string

// String returns the tier identifier
func (t Tier) String() string {
	return string(t)
}

// WordRecord is a single word as stored in a word list document
type WordRecord struct {
	ID   int    `json:"id"`
	Word string `json:"word"`
}

// Document is the on-disk shape of a word list
type Document struct {
	Words []WordRecord `json:"words"`
}

// ParseDocument decodes a word list and checks that every id is unique
func ParseDocument(data []byte) ([]WordRecord, error) {
	var raw struct {
		Words *[]WordRecord `json:"words"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse word list: %w", err)
	}
	if raw.Words == nil {
		return nil, fmt.Errorf("word list has no \"words\" array")
	}

	seen := make(map[int]struct{}, len(*raw.Words))
	for _, rec := range *raw.Words {
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate word id %d", rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}

	return *raw.Words, nil
}

// Layout describes which documents make up a word store
type Layout struct {
	Tiers []Tier

	// NewWords optionally names the tier whose supplementary document
	// flags recently added words
	NewWords *Attachment
}

// Attachment binds a supplementary document to a tier
type Attachment struct {
	Tier     Tier
	Document string
}

// DefaultTiers are the tiers of the multi-tier spelling bee
var DefaultTiers = []Tier{"1B", "2B", "3B"}

// DefaultLayout returns the three-tier layout without a new-words list
func DefaultLayout() Layout {
	tiers := make([]Tier, len(DefaultTiers))
	copy(tiers, DefaultTiers)
	return Layout{Tiers: tiers}
}

// SingleTierLayout returns the layout of a single words.json list
func SingleTierLayout() Layout {
	return Layout{Tiers: []Tier{""}}
}

// DocumentName returns the file name holding the words of a tier
func DocumentName(t Tier) string {
	if t == "" {
		return "words.json"
	}
	return fmt.Sprintf("words_%s.json", t)
}

// NewWordsDocumentName returns the conventional supplementary file name
// for a tier
func NewWordsDocumentName(t Tier) string {
	if t == "" {
		return "new_words.json"
	}
	return fmt.Sprintf("new_words_%s.json", t)
}

// Validate checks the layout for duplicate tiers and a dangling attachment
func (l Layout) Validate() error {
	if len(l.Tiers) == 0 {
		return fmt.Errorf("layout has no tiers")
	}

	seen := make(map[Tier]struct{}, len(l.Tiers))
	for _, t := range l.Tiers {
		if _, dup := seen[t]; dup {
			return fmt.Errorf("duplicate tier %q", t)
		}
		seen[t] = struct{}{}
	}

	if l.NewWords != nil {
		if _, ok := seen[l.NewWords.Tier]; !ok {
			return fmt.Errorf("new words attached to unknown tier %q", l.NewWords.Tier)
		}
		if l.NewWords.Document == "" {
			return fmt.Errorf("new words document for tier %q is empty", l.NewWords.Tier)
		}
	}

	return nil
}
