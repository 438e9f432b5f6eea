package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"guidesearch/internal/domain"
	"guidesearch/internal/fingerprint"
	"guidesearch/internal/index"
)

const (
	chunksFile      = "chunks.jsonl"
	fingerprintFile = "fingerprint.txt"
)

// BuildFunc produces a fresh corpus index from the guides folder.
type BuildFunc func(root string) (*index.Corpus, error)

// Store persists the chunk list and fingerprint of the last index build.
// Chunks are written as one JSON record per line so the index stays
// human-inspectable; IDF statistics are recomputed on load, never stored.
type Store struct {
	dir    string
	logger *slog.Logger
}

func New(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Dir returns the store folder path.
func (s *Store) Dir() string { return s.dir }

// LoadOrBuild returns the persisted corpus when the stored fingerprint
// still matches the guides folder; otherwise it rebuilds via build and
// persists the new chunk list and fingerprint. Missing or corrupt stored
// state is treated as a cache miss, never a fatal error.
func (s *Store) LoadOrBuild(root string, build BuildFunc) (*index.Corpus, error) {
	current, err := fingerprint.Compute(root)
	if err != nil {
		return nil, fmt.Errorf("fingerprint guides folder: %w", err)
	}
	if corpus, ok := s.tryLoad(current); ok {
		s.logger.Info("loaded existing index", "chunks", len(corpus.Chunks), "store", s.dir)
		return corpus, nil
	}

	s.logger.Info("indexing guides", "root", root)
	corpus, err := build(root)
	if err != nil {
		return nil, err
	}
	if err := s.persist(corpus, current); err != nil {
		return nil, fmt.Errorf("persist index: %w", err)
	}
	s.logger.Info("indexed guides", "chunks", len(corpus.Chunks), "store", s.dir)
	return corpus, nil
}

// Invalidate deletes the stored fingerprint and chunk list, forcing the
// next LoadOrBuild to rebuild from the guides folder.
func (s *Store) Invalidate() error {
	for _, name := range []string{fingerprintFile, chunksFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (s *Store) tryLoad(current string) (*index.Corpus, bool) {
	stored, err := os.ReadFile(filepath.Join(s.dir, fingerprintFile))
	if err != nil || strings.TrimSpace(string(stored)) != current {
		return nil, false
	}

	f, err := os.Open(filepath.Join(s.dir, chunksFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("stored chunk list unreadable, rebuilding", "error", err)
		}
		return nil, false
	}
	defer f.Close()

	var chunks []domain.Chunk
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk domain.Chunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			s.logger.Warn("corrupt chunk record, rebuilding", "error", err)
			return nil, false
		}
		chunks = append(chunks, chunk)
	}
	if err := sc.Err(); err != nil {
		s.logger.Warn("stored chunk list unreadable, rebuilding", "error", err)
		return nil, false
	}
	return index.New(chunks), true
}

func (s *Store) persist(corpus *index.Corpus, fp string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, chunk := range corpus.Chunks {
		record, err := json.Marshal(chunk)
		if err != nil {
			return err
		}
		buf.Write(record)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(s.dir, chunksFile), buf.Bytes(), 0o644); err != nil {
		return err
	}
	// Fingerprint goes last so a failed chunk write leaves a stale
	// fingerprint and the next start rebuilds.
	return os.WriteFile(filepath.Join(s.dir, fingerprintFile), []byte(fp+"\n"), 0o644)
}
