package gui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/spellbee/internal/cards"
	"codeberg.org/snonux/spellbee/internal/player"
	"codeberg.org/snonux/spellbee/internal/words"
)

// Pronouncer plays the audio of a word on a play control
type Pronouncer interface {
	Play(ctx context.Context, tier words.Tier, word string, ctrl *player.Control) bool
}

// tierSection is the body of one accordion item: the master button and one
// row per card. Everything tappable lives here, never in the item header,
// so taps do not collapse the section.
type tierSection struct {
	deck    *cards.Deck
	rows    []*CardRow
	byID    map[int]*CardRow
	master  *ttwidget.Button
	content *fyne.Container
}

func newTierSection(ctx context.Context, deck *cards.Deck, pron Pronouncer) *tierSection {
	s := &tierSection{
		deck: deck,
		byID: make(map[int]*CardRow, deck.Len()),
	}

	onPlay := func(id int, ctrl *player.Control) {
		card, ok := deck.Card(id)
		if !ok || pron == nil {
			return
		}
		pron.Play(ctx, deck.Tier(), card.Word(), ctrl)
	}
	onReveal := func(id int) { deck.Reveal(id) }
	onHide := func(id int) { deck.Hide(id) }

	list := container.NewVBox()
	for _, card := range deck.Cards() {
		row := NewCardRow(card, onPlay, onReveal, onHide)
		s.rows = append(s.rows, row)
		s.byID[card.ID] = row
		list.Add(row)
		list.Add(widget.NewSeparator())
	}

	s.master = ttwidget.NewButton(deck.Master().Label(), func() {
		deck.ToggleAll()
	})
	s.master.Importance = widget.HighImportance

	// Deck callbacks fire on the goroutine that changed the deck, which is
	// the UI goroutine for every tap.
	deck.OnChange(func(c cards.Card) {
		if row, ok := s.byID[c.ID]; ok {
			row.Update(c)
		}
	})
	deck.OnMasterChange(func(m cards.MasterState) {
		s.master.SetText(m.Label())
	})

	s.content = container.NewVBox(
		container.NewHBox(layout.NewSpacer(), s.master),
		list,
	)
	return s
}

func (s *tierSection) setToolTips() {
	s.master.SetToolTip("Reveal or hide every word of this tier")
	for _, row := range s.rows {
		row.setToolTips()
	}
}

// sectionTitle is the accordion header of a tier
func sectionTitle(store *words.Store, tier words.Tier) string {
	n := store.TierCount(tier)
	name := "Words"
	if tier != "" {
		name = "Tier " + string(tier)
	}
	if fresh := store.NewWordCount(tier); fresh > 0 {
		return fmt.Sprintf("%s (%d words, %d new)", name, n, fresh)
	}
	return fmt.Sprintf("%s (%d words)", name, n)
}
