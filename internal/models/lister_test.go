package models

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

type fakeModelClient struct {
	ids []string
	err error
}

func (f fakeModelClient) ListModels(ctx context.Context) (openai.ModelsList, error) {
	var list openai.ModelsList
	for _, id := range f.ids {
		list.Models = append(list.Models, openai.Model{ID: id})
	}
	return list, f.err
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestList_NoAPIKey(t *testing.T) {
	_, err := NewLister("").List(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if !strings.Contains(err.Error(), ".spellbee.yaml") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListCategorizes(t *testing.T) {
	lister := &Lister{apiKey: "k", client: fakeModelClient{ids: []string{
		"tts-1-hd", "gpt-4o", "gpt-4o-mini-tts", "dall-e-3", "tts-1", "gpt-4o-audio-preview",
	}}}

	catalog, err := lister.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"gpt-4o-audio-preview", "gpt-4o-mini-tts", "tts-1", "tts-1-hd"}
	if strings.Join(catalog.TTS, ",") != strings.Join(want, ",") {
		t.Errorf("TTS = %v, want %v", catalog.TTS, want)
	}
	if catalog.Other != 2 {
		t.Errorf("Other = %d, want 2", catalog.Other)
	}
}

func TestListAvailableModelsPrintsTable(t *testing.T) {
	lister := &Lister{apiKey: "k", client: fakeModelClient{ids: []string{"tts-1", "gpt-4o-mini-tts"}}}

	var buf bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &buf); err != nil {
		t.Fatalf("ListAvailableModels() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"TTS MODEL", "tts-1", "gpt-4o-mini-tts", "alloy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListAPIError(t *testing.T) {
	lister := &Lister{apiKey: "k", client: fakeModelClient{err: errors.New("401")}}
	if _, err := lister.List(context.Background()); err == nil {
		t.Error("expected API error")
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	if err := NewLister(apiKey).ListAvailableModels(context.Background(), os.Stdout); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
