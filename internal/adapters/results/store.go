// Package results implements persistent storage of workflow run results.
package results

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.RunStore using a flat JSON file keyed by workflow.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.RunResult
}

// NewStore creates a RunStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.RunResult),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read run store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal run store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run store")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for run store")
	}

	//nolint:gosec // path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write run store")
	}

	return nil
}

// Get retrieves the last recorded result for a workflow.
func (s *Store) Get(workflow string) (*domain.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.cache[workflow]
	if !ok {
		return nil, nil
	}
	return &result, nil
}

// Put stores the run result, replacing any previous record for the workflow.
func (s *Store) Put(result domain.RunResult) error {
	s.mu.Lock()
	s.cache[result.Workflow] = result
	s.mu.Unlock()

	return s.save()
}
