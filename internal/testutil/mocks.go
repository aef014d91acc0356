package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// MP3Header is the start of an MPEG audio frame, enough for tests that
// only check a file is present and non-empty
var MP3Header = []byte{0xFF, 0xFB, 0x90, 0x00}

// MockProvider is a TTS provider that writes MP3Header files
type MockProvider struct {
	Err error

	mu    sync.Mutex
	texts []string
}

// GenerateAudio records text and writes the output file unless Err is set
func (m *MockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(outputFile, MP3Header, 0644)
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// IsAvailable always succeeds
func (m *MockProvider) IsAvailable() error {
	return nil
}

// Texts returns the words the provider was asked to pronounce
func (m *MockProvider) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}
