package chunker

import (
	"regexp"
	"strings"
)

// ParagraphChunker splits text into bounded chunks on paragraph boundaries,
// seeding each new chunk with a short word overlap from the previous one.
type ParagraphChunker struct {
	chunkSize    int
	overlapWords int
}

func NewParagraphChunker(chunkSize, overlapWords int) *ParagraphChunker {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlapWords < 0 {
		overlapWords = 0
	}
	return &ParagraphChunker{chunkSize: chunkSize, overlapWords: overlapWords}
}

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// Split returns the ordered chunks of text. Every non-empty input yields at
// least one chunk; chunks are trimmed and never cut inside a word. A single
// paragraph or line longer than the chunk size becomes its own chunk.
func (c *ParagraphChunker) Split(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	paragraphs := trimNonEmpty(paragraphBreak.Split(normalized, -1))
	var chunks []string
	if len(paragraphs) > 1 {
		chunks = c.accumulate(paragraphs, "\n\n")
	} else {
		// No paragraph breaks; fall back to line-wise accumulation.
		chunks = c.accumulate(trimNonEmpty(strings.Split(normalized, "\n")), "\n")
	}
	if len(chunks) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			chunks = []string{trimmed}
		}
	}
	return chunks
}

func (c *ParagraphChunker) accumulate(parts []string, sep string) []string {
	var chunks []string
	var buf string
	for _, part := range parts {
		switch {
		case buf == "":
			buf = part
		case len(buf)+len(sep)+len(part) > c.chunkSize:
			chunks = append(chunks, buf)
			if tail := c.overlapTail(buf); tail != "" {
				buf = tail + sep + part
			} else {
				buf = part
			}
		default:
			buf += sep + part
		}
	}
	if buf != "" {
		chunks = append(chunks, buf)
	}
	return chunks
}

// overlapTail returns the last overlapWords words of an emitted chunk.
func (c *ParagraphChunker) overlapTail(chunk string) string {
	words := strings.Fields(chunk)
	n := c.overlapWords
	if n > len(words) {
		n = len(words)
	}
	if n == 0 {
		return ""
	}
	return strings.Join(words[len(words)-n:], " ")
}

func trimNonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
