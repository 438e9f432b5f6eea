package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapCountsUniqueSharedTokens(t *testing.T) {
	q := tokenSet("blue key vault")
	assert.Equal(t, 2, overlap(q, "The blue key turns."))
	assert.Equal(t, 1, overlap(q, "key key key"))
	assert.Equal(t, 0, overlap(q, "nothing shared here"))
}

func TestHighlightBestSentencePicksQueryMatch(t *testing.T) {
	text := "Rain fell outside. The blue key opens the vault. The end came soon."
	out := highlightBestSentence(text, "blue key vault")
	// All sentences survive, trimmed and space-joined.
	assert.Contains(t, out, "Rain fell outside.")
	assert.Contains(t, out, "The end came soon.")
	assert.Contains(t, out, "blue key opens the vault")
}

func TestHighlightBestSentenceNoQueryTokens(t *testing.T) {
	out := highlightBestSentence("One. Two.", "?!")
	assert.Equal(t, "One. Two.", out)
}
