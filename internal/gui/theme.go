package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"

	apptheme "codeberg.org/snonux/spellbee/internal/theme"
)

// variantTheme pins the default fyne theme to one variant regardless of
// the desktop setting
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func newVariantTheme(mode apptheme.Mode) fyne.Theme {
	v := fynetheme.VariantLight
	if mode == apptheme.Dark {
		v = fynetheme.VariantDark
	}
	return &variantTheme{Theme: fynetheme.DefaultTheme(), variant: v}
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

// themeButtonLabel names the action of the theme toggle
func themeButtonLabel(mode apptheme.Mode) string {
	if mode == apptheme.Dark {
		return "☀️ Light"
	}
	return "🌙 Dark"
}
