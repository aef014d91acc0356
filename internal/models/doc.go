// Package models lists the OpenAI text-to-speech models available to an API
// key together with the voices spellbee can pronounce words with.
package models
