package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"guidesearch/internal/domain"
)

// GuideExt is the file extension recognized as a guide document.
const GuideExt = ".txt"

// Discover enumerates guide files under root in a deterministic order.
// Files directly inside root each form their own topic (file name without
// extension, underscores replaced with spaces). Immediate subfolders whose
// name does not start with "." or "_" are treated as one topic each,
// owning every guide file inside them. A missing root yields no documents.
func Discover(root string) ([]domain.Document, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	// Flat layout first: every file is its own topic.
	var docs []domain.Document
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isGuideFile(name) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		docs = append(docs, domain.Document{
			Path:  filepath.Join(root, name),
			Topic: TopicName(stem),
		})
	}

	// Then one-folder-per-topic layout.
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		sub, err := os.ReadDir(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}
		topic := TopicName(name)
		for _, f := range sub {
			if f.IsDir() || !isGuideFile(f.Name()) {
				continue
			}
			docs = append(docs, domain.Document{
				Path:  filepath.Join(root, name, f.Name()),
				Topic: topic,
			})
		}
	}
	return docs, nil
}

// TopicName converts a file or folder name into a display topic.
func TopicName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func isGuideFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), GuideExt)
}
