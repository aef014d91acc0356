package words

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTier is returned for tiers that are not part of the store
var ErrUnknownTier = errors.New("unknown tier")

// Store maps tiers to their ordered word records. It is never mutated after
// construction, so it can be shared freely between goroutines.
type Store struct {
	tiers    []Tier
	words    map[Tier][]WordRecord
	index    map[Tier]map[int]int
	newWords map[Tier]map[string]struct{}
}

// NewStore builds a store from already parsed word lists. newWords holds the
// supplementary list for layout.NewWords and is ignored when the layout has
// no attachment.
func NewStore(layout Layout, lists map[Tier][]WordRecord, newWords []WordRecord) (*Store, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		tiers:    make([]Tier, len(layout.Tiers)),
		words:    make(map[Tier][]WordRecord, len(layout.Tiers)),
		index:    make(map[Tier]map[int]int, len(layout.Tiers)),
		newWords: make(map[Tier]map[string]struct{}),
	}
	copy(s.tiers, layout.Tiers)

	for _, t := range layout.Tiers {
		recs, ok := lists[t]
		if !ok {
			return nil, fmt.Errorf("missing word list for tier %q", t)
		}

		idx := make(map[int]int, len(recs))
		for i, rec := range recs {
			if _, dup := idx[rec.ID]; dup {
				return nil, fmt.Errorf("tier %q: duplicate word id %d", t, rec.ID)
			}
			idx[rec.ID] = i
		}

		owned := make([]WordRecord, len(recs))
		copy(owned, recs)
		s.words[t] = owned
		s.index[t] = idx
	}

	if layout.NewWords != nil {
		set := make(map[string]struct{}, len(newWords))
		for _, rec := range newWords {
			set[strings.ToLower(rec.Word)] = struct{}{}
		}
		s.newWords[layout.NewWords.Tier] = set
	}

	return s, nil
}

// Tiers returns the tiers in presentation order
func (s *Store) Tiers() []Tier {
	out := make([]Tier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// HasTier reports whether t is part of the store
func (s *Store) HasTier(t Tier) bool {
	_, ok := s.words[t]
	return ok
}

// Words returns a copy of the ordered records of a tier
func (s *Store) Words(t Tier) ([]WordRecord, error) {
	recs, ok := s.words[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, t)
	}
	out := make([]WordRecord, len(recs))
	copy(out, recs)
	return out, nil
}

// Lookup finds a record by id within a tier
func (s *Store) Lookup(t Tier, id int) (WordRecord, bool) {
	i, ok := s.index[t][id]
	if !ok {
		return WordRecord{}, false
	}
	return s.words[t][i], true
}

// IsNew reports whether word is flagged as recently added in tier t.
// Membership is case-insensitive.
func (s *Store) IsNew(t Tier, word string) bool {
	_, ok := s.newWords[t][strings.ToLower(word)]
	return ok
}

// NewWordCount returns the size of the new-word set of a tier
func (s *Store) NewWordCount(t Tier) int {
	return len(s.newWords[t])
}

// TierCount returns the number of words in a tier
func (s *Store) TierCount(t Tier) int {
	return len(s.words[t])
}

// Count returns the number of words across all tiers
func (s *Store) Count() int {
	n := 0
	for _, recs := range s.words {
		n += len(recs)
	}
	return n
}
