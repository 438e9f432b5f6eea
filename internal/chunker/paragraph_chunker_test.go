package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	c := NewParagraphChunker(100, 5)
	assert.Empty(t, c.Split(""))
	assert.Empty(t, c.Split("   \n\n  \t\n"))
}

func TestSplitSingleParagraph(t *testing.T) {
	c := NewParagraphChunker(100, 5)
	chunks := c.Split("  Pick up the key on the desk.  ")
	require.Len(t, chunks, 1)
	assert.Equal(t, "Pick up the key on the desk.", chunks[0])
}

func TestSplitAccumulatesParagraphs(t *testing.T) {
	c := NewParagraphChunker(1000, 5)
	chunks := c.Split("First paragraph.\n\nSecond paragraph.\n\nThird paragraph.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.\n\nThird paragraph.", chunks[0])
}

func TestSplitEmitsOnSizeLimit(t *testing.T) {
	p1 := strings.Repeat("alpha ", 10) + "end."   // ~64 chars
	p2 := strings.Repeat("bravo ", 10) + "end."   // ~64 chars
	p3 := strings.Repeat("charlie ", 10) + "end." // ~84 chars
	c := NewParagraphChunker(140, 3)

	chunks := c.Split(p1 + "\n\n" + p2 + "\n\n" + p3)
	require.Len(t, chunks, 2)
	assert.Equal(t, p1+"\n\n"+p2, chunks[0])

	// The second chunk starts with the last 3 words of the first.
	words := strings.Fields(chunks[0])
	overlap := strings.Join(words[len(words)-3:], " ")
	assert.Equal(t, overlap+"\n\n"+p3, chunks[1])
}

func TestSplitOverlapCappedByWordCount(t *testing.T) {
	c := NewParagraphChunker(20, 10)
	chunks := c.Split("one two.\n\nthree four five six seven eight.")
	require.Len(t, chunks, 2)
	assert.Equal(t, "one two.", chunks[0])
	// Only two words exist to overlap.
	assert.Equal(t, "one two.\n\nthree four five six seven eight.", chunks[1])
}

func TestSplitOversizedParagraphBecomesOwnChunk(t *testing.T) {
	big := strings.Repeat("longword ", 40) // well over the limit, no blank lines inside
	c := NewParagraphChunker(100, 5)
	chunks := c.Split("short intro.\n\n" + strings.TrimSpace(big) + "\n\nshort outro.")
	require.GreaterOrEqual(t, len(chunks), 2)
	for _, chunk := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(chunk))
		assert.Equal(t, chunk, strings.TrimSpace(chunk))
	}
}

func TestSplitLineFallback(t *testing.T) {
	// No blank lines anywhere, so accumulation works on lines.
	lines := []string{
		"Use the Heart Key on the east door.",
		"Grab the ammo behind the counter.",
		"The safe code is LEFT 2 RIGHT 11.",
	}
	c := NewParagraphChunker(60, 2)
	chunks := c.Split(strings.Join(lines, "\n"))
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, lines[0], chunks[0])
	assert.True(t, strings.HasSuffix(chunks[len(chunks)-1], lines[2]))
}

func TestSplitRoundTrip(t *testing.T) {
	paras := []string{
		"The blue key opens the vault door in the cellar.",
		"Zombies patrol the east corridor after midnight.",
		"The generator needs three fuses to restore power.",
		"Shoot the eye on the shoulder to stun the boss.",
	}
	c := NewParagraphChunker(110, 4)
	chunks := c.Split(strings.Join(paras, "\n\n"))
	require.Greater(t, len(chunks), 1)

	// Strip each chunk's overlap prefix and reconcatenate: the original
	// paragraph sequence must come back in order.
	rebuilt := chunks[0]
	for i := 1; i < len(chunks); i++ {
		words := strings.Fields(chunks[i-1])
		n := 4
		if n > len(words) {
			n = len(words)
		}
		prefix := strings.Join(words[len(words)-n:], " ") + "\n\n"
		require.True(t, strings.HasPrefix(chunks[i], prefix), "chunk %d missing overlap prefix", i)
		rebuilt += "\n\n" + strings.TrimPrefix(chunks[i], prefix)
	}
	assert.Equal(t, strings.Join(paras, "\n\n"), rebuilt)
}

func TestSplitWindowsLineEndings(t *testing.T) {
	c := NewParagraphChunker(500, 5)
	chunks := c.Split("first.\r\n\r\nsecond.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "first.\n\nsecond.", chunks[0])
}
