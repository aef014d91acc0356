package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sashabaranov/go-openai"
)

// Voices are the OpenAI TTS voices accepted by --openai-voice
var Voices = []string{"alloy", "ash", "coral", "echo", "fable", "nova", "onyx", "sage", "shimmer"}

// modelClient is the part of the OpenAI client used for listing
type modelClient interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Catalog is the categorized result of a model listing
type Catalog struct {
	TTS   []string // speech capable models, sorted
	Other int      // models that cannot produce speech
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client modelClient
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// List fetches the models of the API key and keeps the speech models
func (l *Lister) List(ctx context.Context) (Catalog, error) {
	if l.apiKey == "" {
		return Catalog{}, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .spellbee.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to list models: %w", err)
	}

	var catalog Catalog
	for _, model := range models.Models {
		if isSpeechModel(model.ID) {
			catalog.TTS = append(catalog.TTS, model.ID)
		} else {
			catalog.Other++
		}
	}
	sort.Strings(catalog.TTS)

	return catalog, nil
}

// ListAvailableModels prints the speech models and voices to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	catalog, err := l.List(ctx)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"TTS Model", "Instructions"})
	for _, id := range catalog.TTS {
		instr := ""
		if strings.HasPrefix(id, "gpt-4o") {
			instr = "yes"
		}
		t.AppendRow(table.Row{id, instr})
	}
	if len(catalog.TTS) == 0 {
		t.AppendRow(table.Row{"No TTS models found", ""})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d other models", catalog.Other), ""})
	t.Render()

	fmt.Fprintf(w, "\nVoices: %s\n", strings.Join(Voices, ", "))
	return nil
}

func isSpeechModel(id string) bool {
	return strings.Contains(id, "tts") || strings.Contains(id, "audio")
}
