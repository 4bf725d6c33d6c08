package ports

// CacheStore defines the advisory dependency cache. Entries are scoped to a
// namespace so matrix axes never share state. A restore miss is not an error.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CacheStore interface {
	// Save stores the given paths, relative to dir, under the key.
	// An existing entry for the key is replaced.
	Save(namespace, key, dir string, paths []string) error

	// Restore copies the entry for the key back into dir.
	// It returns false when no entry exists.
	Restore(namespace, key, dir string) (bool, error)
}
