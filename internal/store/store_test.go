package store

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidesearch/internal/chunker"
	"guidesearch/internal/index"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func countingBuilder(counter *int) BuildFunc {
	return func(root string) (*index.Corpus, error) {
		*counter++
		return index.Build(root, chunker.NewParagraphChunker(500, 10), discardLogger())
	}
}

func writeGuides(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha.txt"), []byte("The blue key opens the vault door."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beta.txt"), []byte("The red key opens the shed."), 0o644))
	return root
}

func TestLoadOrBuildBuildsOnceThenLoads(t *testing.T) {
	root := writeGuides(t)
	st := New(filepath.Join(t.TempDir(), "index"), discardLogger())

	builds := 0
	first, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	require.Equal(t, 1, builds)
	require.Len(t, first.Chunks, 2)

	fpBytes, err := os.ReadFile(filepath.Join(st.Dir(), fingerprintFile))
	require.NoError(t, err)
	chunkBytes, err := os.ReadFile(filepath.Join(st.Dir(), chunksFile))
	require.NoError(t, err)

	second, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	assert.Equal(t, 1, builds, "second call must not rebuild")
	assert.Equal(t, first.Chunks, second.Chunks)

	// Persisted records are bit-identical after the no-op call.
	fpAgain, err := os.ReadFile(filepath.Join(st.Dir(), fingerprintFile))
	require.NoError(t, err)
	chunkAgain, err := os.ReadFile(filepath.Join(st.Dir(), chunksFile))
	require.NoError(t, err)
	assert.Equal(t, fpBytes, fpAgain)
	assert.Equal(t, chunkBytes, chunkAgain)
}

func TestLoadRecomputesIDF(t *testing.T) {
	root := writeGuides(t)
	st := New(filepath.Join(t.TempDir(), "index"), discardLogger())

	builds := 0
	_, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)

	loaded, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	require.Equal(t, 1, builds)
	// Statistics are derived on load, not read from disk.
	assert.Greater(t, loaded.IDF("blue"), loaded.IDF("key"))
}

func TestLoadOrBuildRebuildsOnChange(t *testing.T) {
	root := writeGuides(t)
	st := New(filepath.Join(t.TempDir(), "index"), discardLogger())

	builds := 0
	_, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "gamma.txt"), []byte("A third guide appears."), 0o644))

	corpus, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
	assert.Len(t, corpus.Chunks, 3)
}

func TestLoadOrBuildTreatsCorruptChunksAsCacheMiss(t *testing.T) {
	root := writeGuides(t)
	st := New(filepath.Join(t.TempDir(), "index"), discardLogger())

	builds := 0
	_, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(st.Dir(), chunksFile), []byte("{not json\n"), 0o644))

	corpus, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
	assert.Len(t, corpus.Chunks, 2)
}

func TestLoadOrBuildTreatsMissingChunksAsCacheMiss(t *testing.T) {
	root := writeGuides(t)
	st := New(filepath.Join(t.TempDir(), "index"), discardLogger())

	builds := 0
	_, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(st.Dir(), chunksFile)))

	_, err = st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
}

func TestInvalidateForcesRebuild(t *testing.T) {
	root := writeGuides(t)
	st := New(filepath.Join(t.TempDir(), "index"), discardLogger())

	builds := 0
	_, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)

	require.NoError(t, st.Invalidate())
	_, err = st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
}

func TestInvalidateOnEmptyStoreIsNoop(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "index"), discardLogger())
	assert.NoError(t, st.Invalidate())
}

func TestLoadOrBuildEmptyCorpusRoundTrip(t *testing.T) {
	root := t.TempDir() // no guides at all
	st := New(filepath.Join(t.TempDir(), "index"), discardLogger())

	builds := 0
	first, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	assert.Empty(t, first.Chunks)

	second, err := st.LoadOrBuild(root, countingBuilder(&builds))
	require.NoError(t, err)
	assert.Empty(t, second.Chunks)
	assert.Equal(t, 1, builds)
}
