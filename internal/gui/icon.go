package gui

import "fyne.io/fyne/v2"

var iconData = []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
<polygon points="32,4 56,18 56,46 32,60 8,46 8,18" fill="#f5b700" stroke="#3a2a00" stroke-width="3"/>
<text x="32" y="42" font-family="sans-serif" font-size="24" font-weight="bold" text-anchor="middle" fill="#3a2a00">Ab</text>
</svg>`)

// GetAppIcon returns the application icon as a Fyne resource
func GetAppIcon() fyne.Resource {
	return &fyne.StaticResource{
		StaticName:    "spellbee.svg",
		StaticContent: iconData,
	}
}
