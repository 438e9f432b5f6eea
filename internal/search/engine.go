package search

import (
	"fmt"
	"sort"
	"strings"

	"guidesearch/internal/domain"
	"guidesearch/internal/index"
)

// Engine scores chunks against free-text queries. Each instance owns one
// corpus; it never mutates it.
type Engine struct {
	corpus *index.Corpus
}

func NewEngine(corpus *index.Corpus) *Engine {
	return &Engine{corpus: corpus}
}

// Search returns the top k chunks ranked by TF-IDF similarity, normalized
// so the best match has relevance 1.0. The IDF weight is squared, biasing
// ranking toward rare, topic-distinguishing terms. Ties keep discovery
// order. An empty query, an empty corpus or k <= 0 yield no results.
func (e *Engine) Search(query string, k int, topicFilter string) []domain.SearchResult {
	if k <= 0 {
		return nil
	}
	queryTokens := index.Tokenize(query)
	if len(queryTokens) == 0 || len(e.corpus.Chunks) == 0 {
		return nil
	}
	queryTF := index.TermFrequency(queryTokens)

	// Unique query tokens in first-appearance order, so float summation
	// order is fixed and repeated searches rank identically.
	terms := make([]string, 0, len(queryTF))
	seen := make(map[string]struct{}, len(queryTF))
	for _, tok := range queryTokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}

	type scored struct {
		chunk domain.Chunk
		score float64
	}
	var matches []scored
	for _, chunk := range e.corpus.Chunks {
		if topicFilter != "" && chunk.Topic != topicFilter {
			continue
		}
		chunkTF := index.TermFrequency(index.Tokenize(chunk.Content))
		score := 0.0
		for _, tok := range terms {
			ctf, ok := chunkTF[tok]
			if !ok {
				continue
			}
			idf := e.corpus.IDF(tok)
			score += queryTF[tok] * ctf * idf * idf
		}
		if score > 0 {
			matches = append(matches, scored{chunk: chunk, score: score})
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if k > len(matches) {
		k = len(matches)
	}
	top := matches[0].score
	results := make([]domain.SearchResult, 0, k)
	for _, m := range matches[:k] {
		results = append(results, domain.SearchResult{Chunk: m.chunk, Relevance: m.score / top})
	}
	return results
}

// SearchContext formats the ranked results as numbered, topic-labeled
// sections usable directly as an LLM prompt fragment.
func (e *Engine) SearchContext(query string, k int, topicFilter string) string {
	results := e.Search(query, k, topicFilter)
	if len(results) == 0 {
		return ""
	}
	sections := make([]string, 0, len(results))
	for i, r := range results {
		sections = append(sections, fmt.Sprintf("[Section %d - %s]\n%s", i+1, r.Chunk.Topic, r.Chunk.Content))
	}
	return strings.Join(sections, "\n\n")
}

// ListTopics returns the distinct topics across all chunks in ascending
// lexical order.
func (e *Engine) ListTopics() []string {
	seen := make(map[string]struct{})
	var topics []string
	for _, chunk := range e.corpus.Chunks {
		if _, ok := seen[chunk.Topic]; ok {
			continue
		}
		seen[chunk.Topic] = struct{}{}
		topics = append(topics, chunk.Topic)
	}
	sort.Strings(topics)
	return topics
}
