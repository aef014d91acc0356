package words

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "words_1B.json", `{"words":[{"id":1,"word":"tag"},{"id":2,"word":"send"}]}`)
	writeDoc(t, dir, "words_2B.json", `{"words":[{"id":1,"word":"nomad"}]}`)
	writeDoc(t, dir, "words_3B.json", `{"words":[{"id":7,"word":"ecrevisse"}]}`)
	writeDoc(t, dir, "new_words_3B.json", `{"words":[{"id":1,"word":"Ecrevisse"}]}`)

	layout := DefaultLayout()
	layout.NewWords = &Attachment{Tier: "3B", Document: "new_words_3B.json"}

	store, err := Load(context.Background(), DirSource{Dir: dir}, layout, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, store.Count())
	assert.True(t, store.IsNew("3B", "ecrevisse"))

	rec, ok := store.Lookup("3B", 7)
	require.True(t, ok)
	assert.Equal(t, "ecrevisse", rec.Word)
}

func TestLoadSingleTier(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "words.json", `{"words":[{"id":1,"word":"moment"}]}`)

	store, err := Load(context.Background(), DirSource{Dir: dir}, SingleTierLayout(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Tier{""}, store.Tiers())
	assert.Equal(t, 1, store.Count())
}

func TestLoadFailureIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "words_1B.json", `{"words":[{"id":1,"word":"tag"}]}`)
	writeDoc(t, dir, "words_2B.json", `{"words":[`)
	writeDoc(t, dir, "words_3B.json", `{"words":[]}`)

	store, err := Load(context.Background(), DirSource{Dir: dir}, DefaultLayout(), nil)
	require.Error(t, err)
	assert.Nil(t, store)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "words_2B.json", loadErr.Document)
}

func TestLoadMissingDocument(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "words_1B.json", `{"words":[]}`)

	store, err := Load(context.Background(), DirSource{Dir: dir}, DefaultLayout(), nil)
	require.Error(t, err)
	assert.Nil(t, store)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadOverHTTP(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/data/words_1B.json":
			w.Write([]byte(`{"words":[{"id":1,"word":"tag"}]}`))
		case "/data/words_2B.json":
			w.Write([]byte(`{"words":[{"id":1,"word":"nomad"}]}`))
		case "/data/words_3B.json":
			w.Write([]byte(`{"words":[{"id":7,"word":"ecrevisse"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store, err := Load(context.Background(), NewSource(srv.URL+"/data"), DefaultLayout(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Count())
	assert.Equal(t, int32(3), hits.Load())
}

func TestLoadOverHTTPNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/words_2B.json" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"words":[]}`))
	}))
	defer srv.Close()

	store, err := Load(context.Background(), HTTPSource{BaseURL: srv.URL}, DefaultLayout(), nil)
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLoadCanceledContext(t *testing.T) {
	dir := t.TempDir()
	for _, tier := range DefaultTiers {
		writeDoc(t, dir, DocumentName(tier), `{"words":[]}`)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store, err := Load(ctx, DirSource{Dir: dir}, DefaultLayout(), nil)
	require.Error(t, err)
	assert.Nil(t, store)
}

func TestNewSource(t *testing.T) {
	assert.IsType(t, HTTPSource{}, NewSource("https://example.org/bee"))
	assert.IsType(t, DirSource{}, NewSource("./data"))
}
