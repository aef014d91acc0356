package cards

import (
	"fmt"
	"sync"

	"codeberg.org/snonux/spellbee/internal/words"
)

// RevealState is the display state of a single card
type RevealState int

const (
	Masked RevealState = iota
	Revealed
)

func (s RevealState) String() string {
	if s == Revealed {
		return "revealed"
	}
	return "masked"
}

// MasterState is the aggregate state behind a tier's reveal-all control
type MasterState int

const (
	AllHidden MasterState = iota
	AllRevealed
)

// Labels of the master control
const (
	RevealAllLabel = "Reveal All"
	HideAllLabel   = "Hide All"
)

// Label returns the text of the master control. The label names the action
// the next ToggleAll will take.
func (s MasterState) Label() string {
	if s == AllRevealed {
		return HideAllLabel
	}
	return RevealAllLabel
}

func (s MasterState) String() string {
	if s == AllRevealed {
		return "all-revealed"
	}
	return "all-hidden"
}

// Card is a snapshot of one rendered word
type Card struct {
	Tier  words.Tier
	ID    int
	word  string
	isNew bool
	state RevealState
}

// Label is the identifier shown on the card
func (c Card) Label() string {
	return fmt.Sprintf("Word %d", c.ID)
}

// Display returns the masked or revealed text of the card
func (c Card) Display() string {
	if c.state == Revealed {
		return c.word
	}
	return Mask(c.word)
}

// Word returns the spelling behind the card
func (c Card) Word() string {
	return c.word
}

// State returns the reveal state
func (c Card) State() RevealState {
	return c.state
}

// IsNew reports whether the card carries the recently-added marker
func (c Card) IsNew() bool {
	return c.isNew
}

// RevealVisible reports whether the reveal control is shown
func (c Card) RevealVisible() bool {
	return c.state == Masked
}

// HideVisible reports whether the hide control is shown
func (c Card) HideVisible() bool {
	return c.state == Revealed
}

// Deck is the rendered state of one tier
type Deck struct {
	tier words.Tier

	mu       sync.Mutex
	cards    []Card
	index    map[int]int
	master   MasterState
	onChange func(Card)
	onMaster func(MasterState)
}

// Render builds a fresh deck for a tier in stored order. Every card starts
// masked and the master control starts at AllHidden; rendering the same tier
// twice yields two identical, independent decks.
func Render(store *words.Store, tier words.Tier) (*Deck, error) {
	recs, err := store.Words(tier)
	if err != nil {
		return nil, err
	}

	d := &Deck{
		tier:  tier,
		cards: make([]Card, len(recs)),
		index: make(map[int]int, len(recs)),
	}
	for i, rec := range recs {
		d.cards[i] = Card{
			Tier:  tier,
			ID:    rec.ID,
			word:  rec.Word,
			isNew: store.IsNew(tier, rec.Word),
		}
		d.index[rec.ID] = i
	}

	return d, nil
}

// Tier returns the tier the deck was rendered from
func (d *Deck) Tier() words.Tier {
	return d.tier
}

// OnChange registers a callback fired after a card changes state
func (d *Deck) OnChange(fn func(Card)) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// OnMasterChange registers a callback fired after ToggleAll flips the
// master state
func (d *Deck) OnMasterChange(fn func(MasterState)) {
	d.mu.Lock()
	d.onMaster = fn
	d.mu.Unlock()
}

// Cards returns a snapshot of all cards in presentation order
func (d *Deck) Cards() []Card {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Card returns the current snapshot of a card
func (d *Deck) Card(id int) (Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, ok := d.index[id]
	if !ok {
		return Card{}, false
	}
	return d.cards[i], true
}

// Len returns the number of cards
func (d *Deck) Len() int {
	return len(d.cards)
}

// Master returns the master control state
func (d *Deck) Master() MasterState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.master
}

// Reveal shows the spelling of a card. Unknown ids are ignored and reported
// with false so stale UI callbacks are harmless.
func (d *Deck) Reveal(id int) bool {
	return d.set(id, Revealed)
}

// Hide masks a card again
func (d *Deck) Hide(id int) bool {
	return d.set(id, Masked)
}

// ToggleAll applies reveal or hide to every card in order and flips the
// master state once. Cards changed individually since the last ToggleAll do
// not influence the outcome; the master state alone decides the action.
func (d *Deck) ToggleAll() MasterState {
	d.mu.Lock()
	target := Revealed
	next := AllRevealed
	if d.master == AllRevealed {
		target = Masked
		next = AllHidden
	}

	changed := make([]Card, 0, len(d.cards))
	for i := range d.cards {
		if d.cards[i].state != target {
			d.cards[i].state = target
			changed = append(changed, d.cards[i])
		}
	}
	d.master = next
	onChange, onMaster := d.onChange, d.onMaster
	d.mu.Unlock()

	if onChange != nil {
		for _, c := range changed {
			onChange(c)
		}
	}
	if onMaster != nil {
		onMaster(next)
	}
	return next
}

func (d *Deck) set(id int, state RevealState) bool {
	d.mu.Lock()
	i, ok := d.index[id]
	if !ok {
		d.mu.Unlock()
		return false
	}
	d.cards[i].state = state
	c := d.cards[i]
	onChange := d.onChange
	d.mu.Unlock()

	if onChange != nil {
		onChange(c)
	}
	return true
}
