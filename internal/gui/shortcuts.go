package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const hotkeysMarkdown = `## Sections
**1-9** Reveal or hide all words of the n-th tier  

## Display
**t** Toggle light/dark theme  

## Help
**h** Show hotkeys  
**c** Close dialog  
**q** Quit application  

---
Press **c** to close this dialog`

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(a.handleRune)
}

func (a *Application) handleRune(r rune) {
	switch {
	case r >= '1' && r <= '9':
		a.toggleSection(int(r - '1'))
	case r == 't' || r == 'T':
		a.onToggleTheme()
	case r == 'h' || r == 'H':
		a.onShowHotkeys()
	case r == 'q' || r == 'Q':
		a.window.Close()
	}
}

func (a *Application) onShowHotkeys() {
	content := widget.NewRichTextFromMarkdown(hotkeysMarkdown)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(420, 320))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)

	// While the dialog is open only 'c' is handled
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if r == 'c' || r == 'C' {
			d.Hide()
		}
	})
	d.SetOnClosed(a.setupKeyboardShortcuts)
	d.Show()
}
