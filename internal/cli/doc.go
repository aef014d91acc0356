// Package cli provides command-line interface setup and configuration
// for the spellbee application. It handles flag parsing, command
// creation, and configuration management using cobra and viper, and
// turns the resolved flags into word layouts, TTS provider settings
// and loggers for the rest of the program.
package cli
