// Package cache implements the advisory dependency cache. Entries are
// namespaced per job axis so matrix variants never share state.
package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	relayfs "go.trai.ch/relay/internal/adapters/fs"
	"go.trai.ch/zerr"
)

// Store implements ports.CacheStore on a directory tree:
//
//	<root>/<namespace digest>/<key digest>/
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) entryDir(namespace, key string) string {
	return filepath.Join(s.root, relayfs.DigestString(namespace), relayfs.DigestString(key))
}

// Save stores the given paths, relative to dir, under the key. Any previous
// entry for the key is replaced.
func (s *Store) Save(namespace, key, dir string, paths []string) error {
	entry := s.entryDir(namespace, key)

	if err := os.RemoveAll(entry); err != nil {
		return zerr.Wrap(err, "failed to clear cache entry")
	}

	for _, p := range paths {
		src := filepath.Join(dir, p)
		dst := filepath.Join(entry, p)
		if err := relayfs.CopyTree(src, dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to save cache path"), "path", p)
		}
	}
	return nil
}

// Restore copies the entry for the key back into dir. A miss returns
// false without error: the cache is advisory.
func (s *Store) Restore(namespace, key, dir string) (bool, error) {
	entry := s.entryDir(namespace, key)

	entries, err := os.ReadDir(entry)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, "failed to read cache entry")
	}

	for _, e := range entries {
		src := filepath.Join(entry, e.Name())
		dst := filepath.Join(dir, e.Name())
		if err := relayfs.CopyTree(src, dst); err != nil {
			return false, zerr.With(zerr.Wrap(err, "failed to restore cache path"), "path", e.Name())
		}
	}
	return true, nil
}
