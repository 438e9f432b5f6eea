package index

import (
	"log/slog"
	"math"
	"os"

	"guidesearch/internal/discovery"
	"guidesearch/internal/domain"
)

// Corpus is the flat chunk store plus the IDF statistics derived from it.
// The statistics are rebuilt whenever the chunk list changes and are never
// persisted; every load path recomputes them before the first query.
type Corpus struct {
	Chunks []domain.Chunk
	idf    map[string]float64
}

// New wraps an existing chunk list and derives its IDF statistics.
func New(chunks []domain.Chunk) *Corpus {
	c := &Corpus{Chunks: chunks}
	c.recomputeIDF()
	return c
}

// Build discovers every guide under root, chunks it and stamps each chunk
// with its topic and source file. A file that cannot be read is skipped
// with a warning; it never aborts the build. Zero discovered files yield
// an empty corpus, not an error.
func Build(root string, chunker domain.Chunker, logger *slog.Logger) (*Corpus, error) {
	docs, err := discovery.Discover(root)
	if err != nil {
		return nil, err
	}
	var chunks []domain.Chunk
	for _, doc := range docs {
		data, err := os.ReadFile(doc.Path)
		if err != nil {
			logger.Warn("skipping unreadable guide", "path", doc.Path, "error", err)
			continue
		}
		for _, text := range chunker.Split(string(data)) {
			chunks = append(chunks, domain.Chunk{Content: text, Topic: doc.Topic, Source: doc.Path})
		}
	}
	return New(chunks), nil
}

// IDF returns the corpus weight for a token. Tokens absent from every
// chunk default to 1.0.
func (c *Corpus) IDF(token string) float64 {
	if v, ok := c.idf[token]; ok {
		return v
	}
	return 1.0
}

func (c *Corpus) recomputeIDF() {
	df := make(map[string]int)
	for _, chunk := range c.Chunks {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(chunk.Content) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Smoothed IDF: a token present in every chunk weighs exactly the
	// 1.0 default of an unseen token, and rare tokens weigh more. The
	// unsmoothed ratio collapses to zero weight for rare terms in very
	// small corpora, which inverts rankings there.
	c.idf = make(map[string]float64, len(df))
	n := float64(len(c.Chunks))
	for tok, count := range df {
		c.idf[tok] = math.Log((1+n)/(1+float64(count))) + 1
	}
}
