// Package audio generates pronunciation files with text-to-speech providers
// and plays them back through an external audio player.
package audio
