// Package theme keeps the light/dark display preference. The preference is
// the only state spellbee persists.
package theme

import (
	"fmt"
	"sync"
)

// PreferenceKey is the storage key of the theme preference
const PreferenceKey = "theme"

// Mode is a display theme
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "light" or "dark"
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Other returns the opposite mode
func (m Mode) Other() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Preferences is durable key-value storage. fyne.Preferences satisfies it.
type Preferences interface {
	StringWithFallback(key, fallback string) string
	SetString(key, value string)
}

// Controller applies and persists the theme preference
type Controller struct {
	prefs Preferences
	apply func(Mode)

	mu   sync.Mutex
	mode Mode
}

// NewController reads the stored preference once, defaulting to light when
// it is absent or unreadable, and applies it
func NewController(prefs Preferences, apply func(Mode)) *Controller {
	mode, err := ParseMode(prefs.StringWithFallback(PreferenceKey, string(Light)))
	if err != nil {
		mode = Light
	}

	c := &Controller{prefs: prefs, apply: apply, mode: mode}
	if apply != nil {
		apply(mode)
	}
	return c
}

// Mode returns the active mode
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Toggle switches between light and dark and persists the new mode
func (c *Controller) Toggle() Mode {
	c.mu.Lock()
	next := c.mode.Other()
	c.mu.Unlock()

	return c.Set(next)
}

// Set applies and persists mode
func (c *Controller) Set(mode Mode) Mode {
	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()

	c.prefs.SetString(PreferenceKey, string(mode))
	if c.apply != nil {
		c.apply(mode)
	}
	return mode
}
