package audio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/spellbee/internal/words"
)

func newTestGenerator(t *testing.T, p Provider, force bool) (*Generator, string) {
	t.Helper()
	root := t.TempDir()
	opts := DefaultGeneratorOptions()
	opts.AudioRoot = root
	opts.Force = force
	g := NewGenerator(p, opts, nil)
	g.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return g, root
}

var tierWords = []words.WordRecord{
	{ID: 1, Word: "ecrevisse"},
	{ID: 2, Word: "Café Noël"},
	{ID: 3, Word: "plaid"},
}

func TestGenerateTier(t *testing.T) {
	p := &mockProvider{name: "mock", writeFiles: true}
	g, root := newTestGenerator(t, p, false)

	// pre-existing file is skipped
	existing := filepath.Join(root, "3B", "plaid.mp3")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0755))
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	stats, err := g.GenerateTier(context.Background(), "3B", tierWords)
	require.NoError(t, err)

	assert.Equal(t, Stats{Generated: 2, Skipped: 1}, stats)
	assert.Equal(t, 3, stats.Total())
	assert.FileExists(t, filepath.Join(root, "3B", "ecrevisse.mp3"))
	assert.FileExists(t, filepath.Join(root, "3B", "cafe_noel.mp3"))
	assert.Equal(t, []string{"ecrevisse", "Café Noël"}, p.texts)
}

func TestGenerateTierForce(t *testing.T) {
	p := &mockProvider{name: "mock", writeFiles: true}
	g, root := newTestGenerator(t, p, true)

	existing := filepath.Join(root, "3B", "plaid.mp3")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0755))
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	stats, err := g.GenerateTier(context.Background(), "3B", tierWords)
	require.NoError(t, err)
	assert.Equal(t, Stats{Generated: 3}, stats)
}

func TestGenerateTierRetries(t *testing.T) {
	p := &mockProvider{name: "mock", failTimes: 2, writeFiles: true}
	g, _ := newTestGenerator(t, p, false)

	stats, err := g.GenerateTier(context.Background(), "1B", tierWords[:1])
	require.NoError(t, err)
	assert.Equal(t, Stats{Generated: 1}, stats)
	assert.Equal(t, 3, p.generateCalls)
}

func TestGenerateTierCountsFailures(t *testing.T) {
	p := &mockProvider{name: "mock", generateErr: errors.New("boom")}
	g, _ := newTestGenerator(t, p, false)

	stats, err := g.GenerateTier(context.Background(), "1B", tierWords)
	require.NoError(t, err)
	assert.Equal(t, Stats{Failed: 3}, stats)
	assert.Equal(t, 9, p.generateCalls)
}

func TestGenerateTierAbortsOnOpenBreaker(t *testing.T) {
	inner := &mockProvider{name: "mock", generateErr: errors.New("boom")}
	p := NewBreakerProvider(inner, BreakerSettings{MaxConsecutiveFailures: 3, OpenTimeout: time.Minute}, nil)
	g, _ := newTestGenerator(t, p, false)

	stats, err := g.GenerateTier(context.Background(), "1B", tierWords)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted")
	assert.Equal(t, 3, stats.Failed)
	assert.Equal(t, 3, inner.generateCalls)
}

func TestGenerateTierProgressUsesPosition(t *testing.T) {
	root := t.TempDir()
	opts := DefaultGeneratorOptions()
	opts.AudioRoot = root
	var out bytes.Buffer
	opts.Output = &out
	g := NewGenerator(&mockProvider{name: "mock"}, opts, nil)
	g.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }

	sparse := []words.WordRecord{
		{ID: 57, Word: "ecrevisse"},
		{ID: 104, Word: "plaid"},
	}
	stats, err := g.GenerateTier(context.Background(), "3B", sparse)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Generated)

	progress := out.String()
	assert.Contains(t, progress, "[3B] [  1/2] 🔊 Generating 'ecrevisse'")
	assert.Contains(t, progress, "[3B] [  2/2] 🔊 Generating 'plaid'")
	assert.NotContains(t, progress, "57/2")
}

func TestGeneratorLock(t *testing.T) {
	g, root := newTestGenerator(t, &mockProvider{name: "mock"}, false)

	unlock, err := g.Lock()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, LockFileName))

	other := NewGenerator(&mockProvider{name: "mock"}, GeneratorOptions{AudioRoot: root}, nil)
	_, err = other.Lock()
	assert.ErrorIs(t, err, ErrLocked)

	unlock()
	unlock2, err := other.Lock()
	require.NoError(t, err)
	unlock2()
}

func TestStatsAdd(t *testing.T) {
	s := Stats{Generated: 1}
	s.Add(Stats{Generated: 2, Skipped: 3, Failed: 4})
	assert.Equal(t, Stats{Generated: 3, Skipped: 3, Failed: 4}, s)
}
