package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"guidesearch/internal/discovery"
)

// Compute digests the metadata of every discoverable guide file under root.
// The digest covers relative path, size and modification time, so touching,
// renaming, adding or removing a file all produce a different fingerprint.
// Content is deliberately not read; a metadata-only touch forces a reindex.
func Compute(root string) (string, error) {
	docs, err := discovery.Discover(root)
	if err != nil {
		return "", err
	}

	entries := make([]string, 0, len(docs))
	for _, doc := range docs {
		info, err := os.Stat(doc.Path)
		if err != nil {
			// A file that vanished between discovery and stat simply
			// drops out of the digest, same as a removed file.
			continue
		}
		rel, err := filepath.Rel(root, doc.Path)
		if err != nil {
			rel = doc.Path
		}
		entries = append(entries, fmt.Sprintf("%s:%d:%d", filepath.ToSlash(rel), info.Size(), info.ModTime().UnixNano()))
	}
	sort.Strings(entries)

	sum := md5.Sum([]byte(strings.Join(entries, ";")))
	return hex.EncodeToString(sum[:]), nil
}

// IsStale reports whether stored no longer matches the current corpus.
func IsStale(stored, root string) (bool, error) {
	current, err := Compute(root)
	if err != nil {
		return false, err
	}
	return stored != current, nil
}
