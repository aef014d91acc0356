package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/spellbee/internal/cards"
	"codeberg.org/snonux/spellbee/internal/player"
)

// Button labels of a card row
const (
	RevealLabel = "👁️ Reveal"
	HideLabel   = "🙈 Hide"
	NewLabel    = "NEW"
)

// CardRow is a custom widget showing one word card
type CardRow struct {
	widget.BaseWidget

	container    *fyne.Container
	idLabel      *widget.Label
	newBadge     *widget.Label
	playButton   *ttwidget.Button
	revealButton *ttwidget.Button
	hideButton   *ttwidget.Button
	display      *widget.Label

	id      int
	control *player.Control
}

// NewCardRow creates the row for card. onPlay, onReveal and onHide receive
// the card id; onPlay also gets the row's play control.
func NewCardRow(card cards.Card, onPlay func(int, *player.Control), onReveal, onHide func(int)) *CardRow {
	r := &CardRow{
		id:      card.ID,
		control: player.NewControl(player.PlayLabel),
	}

	r.idLabel = widget.NewLabel(card.Label())
	r.idLabel.TextStyle = fyne.TextStyle{Bold: true}

	r.newBadge = widget.NewLabel(NewLabel)
	r.newBadge.Importance = widget.WarningImportance
	r.newBadge.TextStyle = fyne.TextStyle{Bold: true}

	r.playButton = ttwidget.NewButton(player.PlayLabel, func() {
		if onPlay != nil {
			onPlay(r.id, r.control)
		}
	})
	r.revealButton = ttwidget.NewButton(RevealLabel, func() {
		if onReveal != nil {
			onReveal(r.id)
		}
	})
	r.hideButton = ttwidget.NewButton(HideLabel, func() {
		if onHide != nil {
			onHide(r.id)
		}
	})

	r.display = widget.NewLabel("")
	r.display.TextStyle = fyne.TextStyle{Monospace: true}

	r.control.OnUpdate(func(st player.ControlState) {
		fyne.Do(func() { r.applyControl(st) })
	})

	r.container = container.NewVBox(
		container.NewHBox(r.idLabel, r.newBadge, layout.NewSpacer(), r.playButton),
		container.NewHBox(r.revealButton, r.hideButton, r.display),
	)

	r.Update(card)
	r.ExtendBaseWidget(r)
	return r
}

// CreateRenderer implements fyne.Widget
func (r *CardRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(r.container)
}

// Update redraws the row from card
func (r *CardRow) Update(card cards.Card) {
	r.display.SetText(card.Display())
	if card.IsNew() {
		r.newBadge.Show()
	} else {
		r.newBadge.Hide()
	}
	if card.RevealVisible() {
		r.revealButton.Show()
	} else {
		r.revealButton.Hide()
	}
	if card.HideVisible() {
		r.hideButton.Show()
	} else {
		r.hideButton.Hide()
	}
}

// Control returns the play control of the row
func (r *CardRow) Control() *player.Control {
	return r.control
}

// setToolTips must run after the window tooltip layer exists
func (r *CardRow) setToolTips() {
	r.playButton.SetToolTip("Play pronunciation")
	r.revealButton.SetToolTip("Show the spelling")
	r.hideButton.SetToolTip("Mask the spelling")
}

func (r *CardRow) applyControl(st player.ControlState) {
	r.playButton.SetText(st.Label)
	if st.Enabled {
		r.playButton.Enable()
	} else {
		r.playButton.Disable()
	}
}
