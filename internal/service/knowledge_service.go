package service

import (
	"log/slog"
	"sync"

	"guidesearch/internal/domain"
	"guidesearch/internal/index"
	"guidesearch/internal/search"
	"guidesearch/internal/store"
)

// KnowledgeService wires the pipeline together: on construction it loads
// the persisted index or rebuilds it from the guides folder, then serves
// queries from memory. The mutex only matters for the watch path, where a
// background reindex may swap the corpus under a reading TUI.
type KnowledgeService struct {
	guidesDir  string
	store      *store.Store
	chunker    domain.Chunker
	summarizer domain.Summarizer
	logger     *slog.Logger

	mu     sync.RWMutex
	corpus *index.Corpus
	engine *search.Engine
}

func New(guidesDir string, st *store.Store, chunker domain.Chunker, summarizer domain.Summarizer, logger *slog.Logger) (*KnowledgeService, error) {
	s := &KnowledgeService{
		guidesDir:  guidesDir,
		store:      st,
		chunker:    chunker,
		summarizer: summarizer,
		logger:     logger,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *KnowledgeService) load() error {
	corpus, err := s.store.LoadOrBuild(s.guidesDir, func(root string) (*index.Corpus, error) {
		return index.Build(root, s.chunker, s.logger)
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.corpus = corpus
	s.engine = search.NewEngine(corpus)
	s.mu.Unlock()
	return nil
}

// Reindex discards the persisted index and rebuilds it from the guides
// folder, replacing the in-memory corpus.
func (s *KnowledgeService) Reindex() error {
	if err := s.store.Invalidate(); err != nil {
		return err
	}
	return s.load()
}

func (s *KnowledgeService) Search(query string, k int, topicFilter string) []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Search(query, k, topicFilter)
}

func (s *KnowledgeService) SearchContext(query string, k int, topicFilter string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.SearchContext(query, k, topicFilter)
}

func (s *KnowledgeService) ListTopics() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.ListTopics()
}

func (s *KnowledgeService) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topics := s.engine.ListTopics()
	return domain.Stats{
		TotalChunks: len(s.corpus.Chunks),
		TotalTopics: len(topics),
		Topics:      topics,
		StorePath:   s.store.Dir(),
	}
}

// Overview summarizes the whole corpus into a few sentences, used as the
// TUI header line.
func (s *KnowledgeService) Overview(maxSentences int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.corpus.Chunks) == 0 {
		return "No guides indexed yet."
	}
	var b []byte
	for _, chunk := range s.corpus.Chunks {
		b = append(b, chunk.Content...)
		b = append(b, ' ')
	}
	return s.summarizer.Summarize(string(b), maxSentences)
}
