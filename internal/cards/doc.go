// Package cards turns the words of a tier into word cards and tracks their
// reveal state. It is independent of any UI toolkit; the GUI observes decks
// through OnChange.
package cards
