package anki

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGenerateCSV(t *testing.T) {
	tests := []struct {
		name    string
		headers bool
		cards   []Card
		want    [][]string
	}{
		{
			name:    "with headers",
			headers: true,
			cards: []Card{
				{Word: "ecrevisse", Tier: "3B", AudioFile: "audio/3B/ecrevisse.mp3"},
				{Word: "plaid", Tier: "3B"},
			},
			want: [][]string{
				{"Spelling", "Audio", "Tier"},
				{"ecrevisse", "[sound:3B_ecrevisse.mp3]", "3B"},
				{"plaid", "", "3B"},
			},
		},
		{
			name:    "without headers",
			headers: false,
			cards:   []Card{{Word: "lo mein", AudioFile: "audio/lo_mein.mp3"}},
			want:    [][]string{{"lo mein", "[sound:lo_mein.mp3]", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "anki.csv")
			gen := NewGenerator(&GeneratorOptions{OutputPath: output, IncludeHeaders: tt.headers})
			for _, c := range tt.cards {
				gen.AddCard(c)
			}

			if err := gen.GenerateCSV(); err != nil {
				t.Fatalf("GenerateCSV() error = %v", err)
			}

			f, err := os.Open(output)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			got, err := csv.NewReader(f).ReadAll()
			if err != nil {
				t.Fatalf("invalid CSV: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateCSV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultGeneratorOptions(t *testing.T) {
	gen := NewGenerator(nil)
	if gen.options.OutputPath != "anki_import.csv" || !gen.options.IncludeHeaders {
		t.Errorf("unexpected defaults %+v", gen.options)
	}
}
