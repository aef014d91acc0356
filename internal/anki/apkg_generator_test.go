package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeAudio(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("ID3 "+name), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Spelling Bee 3B")

	if gen.deckName != "Spelling Bee 3B" {
		t.Errorf("Expected deck name 'Spelling Bee 3B', got '%s'", gen.deckName)
	}
	if len(gen.cards) != 0 {
		t.Errorf("Expected no cards, got %d", len(gen.cards))
	}
	if gen.MediaCount() != 0 {
		t.Errorf("Expected no media files, got %d", gen.MediaCount())
	}
	if gen.modelID == gen.deckID {
		t.Error("model and deck ids must differ")
	}
}

func TestGenerateAPKG(t *testing.T) {
	tempDir := t.TempDir()
	audio := writeAudio(t, tempDir, "audio/3B/ecrevisse.mp3")

	gen := NewAPKGGenerator("Spelling Bee 3B")
	gen.AddCard(Card{Word: "ecrevisse", Tier: "3B", AudioFile: audio})
	gen.AddCard(Card{Word: "plaid", Tier: "3B", AudioFile: filepath.Join(tempDir, "missing.mp3")})
	gen.AddCard(Card{Word: "kiwi", Tier: "3B"})

	output := filepath.Join(tempDir, "out", "deck.apkg")
	if err := gen.GenerateAPKG(output); err != nil {
		t.Fatalf("GenerateAPKG failed: %v", err)
	}
	if gen.MediaCount() != 1 {
		t.Errorf("Expected 1 media file, got %d", gen.MediaCount())
	}

	reader, err := zip.OpenReader(output)
	if err != nil {
		t.Fatalf("Failed to open apkg: %v", err)
	}
	defer reader.Close()

	files := map[string]*zip.File{}
	for _, f := range reader.File {
		files[f.Name] = f
	}
	for _, name := range []string{"collection.anki2", "media", "0"} {
		if _, ok := files[name]; !ok {
			t.Errorf("apkg is missing %s", name)
		}
	}

	mapping := map[string]string{}
	if err := json.Unmarshal(readZipFile(t, files["media"]), &mapping); err != nil {
		t.Fatalf("invalid media mapping: %v", err)
	}
	if mapping["0"] != "3B_ecrevisse.mp3" {
		t.Errorf("media mapping = %v", mapping)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := os.WriteFile(dbPath, readZipFile(t, files["collection.anki2"]), 0644); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open collection: %v", err)
	}
	defer db.Close()

	var notes, cards int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&notes); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cards); err != nil {
		t.Fatal(err)
	}
	if notes != 3 || cards != 3 {
		t.Errorf("Expected 3 notes and 3 cards, got %d and %d", notes, cards)
	}

	var flds string
	if err := db.QueryRow("SELECT flds FROM notes WHERE sfld = ?", "ecrevisse").Scan(&flds); err != nil {
		t.Fatal(err)
	}
	fields := strings.Split(flds, "\x1f")
	if len(fields) != 3 || fields[1] != "[sound:3B_ecrevisse.mp3]" || fields[2] != "3B" {
		t.Errorf("unexpected fields %q", fields)
	}

	if err := db.QueryRow("SELECT flds FROM notes WHERE sfld = ?", "plaid").Scan(&flds); err != nil {
		t.Fatal(err)
	}
	if strings.Split(flds, "\x1f")[1] != "" {
		t.Errorf("missing audio must leave the Audio field empty, got %q", flds)
	}
}

func TestMediaNameIsUniquePerTier(t *testing.T) {
	a := Card{Word: "Café Noël", Tier: "1B", AudioFile: "audio/1B/cafe_noel.MP3"}
	b := Card{Word: "Café Noël", Tier: "2B", AudioFile: "audio/2B/cafe_noel.mp3"}
	single := Card{Word: "plaid", AudioFile: "audio/plaid.mp3"}

	if a.MediaName() != "1B_cafe_noel.mp3" {
		t.Errorf("MediaName() = %s", a.MediaName())
	}
	if a.MediaName() == b.MediaName() {
		t.Error("media names must differ across tiers")
	}
	if single.MediaName() != "plaid.mp3" {
		t.Errorf("MediaName() = %s", single.MediaName())
	}
	if (Card{Word: "x"}).MediaName() != "" {
		t.Error("card without audio has no media name")
	}
}

func readZipFile(t *testing.T, f *zip.File) []byte {
	t.Helper()
	rc, err := f.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
