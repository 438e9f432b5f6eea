package domain

// Document is a single guide file found under the guides folder.
type Document struct {
	Path  string
	Topic string
}

// Chunk is a bounded passage of guide text, the unit returned by search.
type Chunk struct {
	Content string `json:"content"`
	Topic   string `json:"topic"`
	Source  string `json:"source"`
}

// SearchResult is a matching chunk with its relevance on a (0,1] scale.
type SearchResult struct {
	Chunk     Chunk
	Relevance float64
}

// Stats describes the indexed corpus for callers that need to tell an
// empty result set apart from an empty corpus.
type Stats struct {
	TotalChunks int
	TotalTopics int
	Topics      []string
	StorePath   string
}

// Chunker splits raw guide text into retrievable passages.
type Chunker interface {
	Split(text string) []string
}

// Summarizer produces a brief overview of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) string
}

// KnowledgeBase defines the operations exposed by the application core.
type KnowledgeBase interface {
	Search(query string, k int, topicFilter string) []SearchResult
	SearchContext(query string, k int, topicFilter string) string
	ListTopics() []string
	Stats() Stats
	Reindex() error
}
