package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/spellbee/internal"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateWordList writes words as the list of tier into dataDir with ids
// 1..N and returns the document path
func CreateWordList(t *testing.T, dataDir, tier string, list ...string) string {
	t.Helper()

	type record struct {
		ID   int    `json:"id"`
		Word string `json:"word"`
	}
	doc := struct {
		Words []record `json:"words"`
	}{Words: []record{}}
	for i, w := range list {
		doc.Words = append(doc.Words, record{ID: i + 1, Word: w})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to encode word list: %v", err)
	}

	name := "words.json"
	if tier != "" {
		name = fmt.Sprintf("words_%s.json", tier)
	}
	path := filepath.Join(dataDir, name)
	CreateTestFile(t, path, data)
	return path
}

// CreateAudioFile writes a fake MP3 where the player expects the audio of
// word and returns its path
func CreateAudioFile(t *testing.T, audioRoot, tier, word string) string {
	t.Helper()

	path := filepath.Join(audioRoot, tier, internal.SanitizeFilename(word)+".mp3")
	CreateTestFile(t, path, MP3Header)
	return path
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}
