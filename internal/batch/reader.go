package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/spellbee/internal/words"
)

// ReadWordFile reads one word per line. Blank lines and lines starting
// with '#' are ignored, surrounding whitespace is trimmed and repeated
// words (compared case-insensitively) are dropped.
func ReadWordFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}
	defer f.Close()

	var list []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		list = append(list, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}

	return list, nil
}

// Records numbers the words 1..N in file order
func Records(list []string) []words.WordRecord {
	recs := make([]words.WordRecord, len(list))
	for i, w := range list {
		recs[i] = words.WordRecord{ID: i + 1, Word: w}
	}
	return recs
}

// WriteTierDocument writes recs as the word list of tier into dataDir and
// returns the written path. The file is replaced atomically.
func WriteTierDocument(dataDir string, tier words.Tier, recs []words.WordRecord) (string, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	if recs == nil {
		recs = []words.WordRecord{}
	}
	data, err := json.MarshalIndent(words.Document{Words: recs}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode word list: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(dataDir, words.DocumentName(tier))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write word list: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write word list: %w", err)
	}

	return path, nil
}
