// Package processor contains the command implementations of spellbee. It
// loads the word store, imports word lists, drives audio generation with
// archiving and locking, audits audio coverage, exports Anki decks and
// launches the study GUI. This package serves as the main coordinator
// between all other components.
package processor
