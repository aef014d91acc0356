package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/spellbee/internal/audio"
	"codeberg.org/snonux/spellbee/internal/cli"
	"codeberg.org/snonux/spellbee/internal/testutil"
	"codeberg.org/snonux/spellbee/internal/words"
)

type fixture struct {
	p        *Processor
	out      *bytes.Buffer
	provider *testutil.MockProvider
	dataDir  string
	audioDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	flags := cli.NewFlags()
	flags.DataDir = filepath.Join(root, "data")
	flags.AudioDir = filepath.Join(root, "audio")

	testutil.CreateWordList(t, flags.DataDir, "1B", "kiwi", "plaid")
	testutil.CreateWordList(t, flags.DataDir, "2B", "lo mein")
	testutil.CreateWordList(t, flags.DataDir, "3B", "ecrevisse", "Café Noël")

	f := &fixture{
		out:      &bytes.Buffer{},
		provider: &testutil.MockProvider{},
		dataDir:  flags.DataDir,
		audioDir: flags.AudioDir,
	}
	f.p = NewProcessor(flags, nil)
	f.p.out = f.out
	f.p.genOpts.Pause = 0
	f.p.genOpts.RetryDelay = 0
	f.p.newProvider = func(ctx context.Context) (audio.Provider, error) {
		return f.provider, nil
	}
	return f
}

func TestLoadStore(t *testing.T) {
	f := newFixture(t)

	store, err := f.p.LoadStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []words.Tier{"1B", "2B", "3B"}, store.Tiers())
	assert.Equal(t, 5, store.Count())
}

func TestLoadStoreMissingList(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.dataDir, "words_2B.json")))

	store, err := f.p.LoadStore(context.Background())
	assert.Nil(t, store)

	var loadErr *words.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "words_2B.json", loadErr.Document)
}

func TestImportWords(t *testing.T) {
	f := newFixture(t)
	input := filepath.Join(t.TempDir(), "new.txt")
	testutil.CreateTestFile(t, input, []byte("# 2B additions\nvinaigrette\n\nsaguaro\n"))

	path, n, err := f.p.ImportWords(input, "2B")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, filepath.Join(f.dataDir, "words_2B.json"), path)

	store, err := f.p.LoadStore(context.Background())
	require.NoError(t, err)
	rec, ok := store.Lookup("2B", 2)
	require.True(t, ok)
	assert.Equal(t, "saguaro", rec.Word)
}

func TestImportWordsEmptyFile(t *testing.T) {
	f := newFixture(t)
	input := filepath.Join(t.TempDir(), "empty.txt")
	testutil.CreateTestFile(t, input, []byte("# nothing\n"))

	_, _, err := f.p.ImportWords(input, "2B")
	assert.Error(t, err)
}

func TestListWords(t *testing.T) {
	f := newFixture(t)
	testutil.CreateAudioFile(t, f.audioDir, "3B", "ecrevisse")

	require.NoError(t, f.p.ListWords(context.Background(), "3B"))

	out := f.out.String()
	assert.Contains(t, out, "ecrevisse")
	assert.Contains(t, out, "Café Noël")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
	assert.NotContains(t, out, "kiwi")
	assert.Contains(t, out, "2 words")
}

func TestListWordsUnknownTier(t *testing.T) {
	f := newFixture(t)
	err := f.p.ListWords(context.Background(), "9Z")
	assert.ErrorIs(t, err, words.ErrUnknownTier)
}

func TestSanitizeWords(t *testing.T) {
	f := newFixture(t)
	f.p.SanitizeWords([]string{"Café Noël", "lo mein"})
	assert.Equal(t, "Café Noël\tcafe_noel.mp3\nlo mein\tlo_mein.mp3\n", f.out.String())
}

func TestGenerateAudio(t *testing.T) {
	f := newFixture(t)
	testutil.CreateAudioFile(t, f.audioDir, "1B", "kiwi")

	stats, err := f.p.GenerateAudio(context.Background(), "", false)
	require.NoError(t, err)

	assert.Equal(t, audio.Stats{Generated: 4, Skipped: 1}, stats)
	assert.ElementsMatch(t, []string{"plaid", "lo mein", "ecrevisse", "Café Noël"}, f.provider.Texts())
	testutil.AssertFileExists(t, filepath.Join(f.audioDir, "3B", "cafe_noel.mp3"))
	testutil.AssertFileExists(t, filepath.Join(f.audioDir, "2B", "lo_mein.mp3"))
	assert.Contains(t, f.out.String(), "Audio Generation Summary (all tiers)")
}

func TestGenerateAudioForceArchives(t *testing.T) {
	f := newFixture(t)
	old := testutil.CreateAudioFile(t, f.audioDir, "1B", "kiwi")

	stats, err := f.p.GenerateAudio(context.Background(), "1B", true)
	require.NoError(t, err)
	assert.Equal(t, audio.Stats{Generated: 2}, stats)

	archives, err := filepath.Glob(filepath.Join(f.audioDir, "archive", "1B-*", filepath.Base(old)))
	require.NoError(t, err)
	assert.Len(t, archives, 1)
	testutil.AssertFileExists(t, old)
	assert.Contains(t, f.out.String(), "Archived existing 1B audio")
}

func TestGenerateAudioProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.provider.Err = errors.New("quota exceeded")

	stats, err := f.p.GenerateAudio(context.Background(), "2B", false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Contains(t, f.out.String(), "Failed: 1")
}

func TestGenerateAudioRespectsLock(t *testing.T) {
	f := newFixture(t)

	other := audio.NewGenerator(f.provider, audio.GeneratorOptions{AudioRoot: f.audioDir}, nil)
	unlock, err := other.Lock()
	require.NoError(t, err)
	defer unlock()

	_, err = f.p.GenerateAudio(context.Background(), "1B", false)
	assert.ErrorIs(t, err, audio.ErrLocked)
	assert.Empty(t, f.provider.Texts())
	testutil.AssertFileNotExists(t, filepath.Join(f.audioDir, "1B", "kiwi.mp3"))
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	testutil.CreateAudioFile(t, f.audioDir, "1B", "kiwi")
	testutil.CreateAudioFile(t, f.audioDir, "3B", "Café Noël")
	// empty files are not playable
	testutil.CreateTestFile(t, filepath.Join(f.audioDir, "1B", "plaid.mp3"), nil)
	testutil.CreateTestFile(t, filepath.Join(f.audioDir, "2B", "chow_mein.mp3"), testutil.MP3Header)
	testutil.CreateTestFile(t, filepath.Join(f.audioDir, "2B", "notes.txt"), []byte("ignored"))

	reports, err := f.p.Verify(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, TierReport{Tier: "1B", Words: 2, Present: 1, Bytes: 4, Missing: []string{"plaid"}}, reports[0])
	assert.Equal(t, []string{"lo mein"}, reports[1].Missing)
	assert.Equal(t, []string{"chow_mein.mp3"}, reports[1].Extra)
	assert.Equal(t, 1, reports[2].Present)

	out := f.out.String()
	assert.Contains(t, out, "40.0%")
	assert.Contains(t, out, "Missing audio in 1B")
	assert.Contains(t, out, "Extra audio in 2B")
	assert.True(t, strings.Contains(out, "ecrevisse"))
}

func TestExportAnkiCSV(t *testing.T) {
	f := newFixture(t)
	testutil.CreateAudioFile(t, f.audioDir, "3B", "ecrevisse")
	output := filepath.Join(t.TempDir(), "3b.csv")

	path, err := f.p.ExportAnki(context.Background(), ExportOptions{Tier: "3B", Output: output, CSV: true})
	require.NoError(t, err)
	assert.Equal(t, output, path)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ecrevisse,[sound:3B_ecrevisse.mp3],3B")
	assert.Contains(t, string(data), "Café Noël,,3B")
	assert.Contains(t, f.out.String(), "Exported 2 cards (1 with audio)")
}

func TestExportAnkiAPKG(t *testing.T) {
	f := newFixture(t)
	testutil.CreateAudioFile(t, f.audioDir, "1B", "kiwi")
	output := filepath.Join(t.TempDir(), "deck.apkg")

	_, err := f.p.ExportAnki(context.Background(), ExportOptions{Output: output})
	require.NoError(t, err)
	testutil.AssertFileExists(t, output)
	assert.Contains(t, f.out.String(), "Exported 5 cards")
}
