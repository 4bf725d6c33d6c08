// Package workspace implements the run-scoped artifact store: the shared
// workspace, stored artifacts and captured job logs.
package workspace

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/relay/internal/adapters/fs"
	"go.trai.ch/relay/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ArtifactStore on top of a run directory:
//
//	<root>/workspace/   shared tree between jobs of one run
//	<root>/artifacts/   per-job stored artifacts
//	<root>/logs/        per-axis captured output
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string) (*Store, error) {
	s := &Store{root: filepath.Clean(root)}
	for _, dir := range []string{s.workspaceDir(), s.artifactsDir(), s.logsDir()} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, zerr.Wrap(err, "failed to create run directory")
		}
	}
	return s, nil
}

func (s *Store) workspaceDir() string { return filepath.Join(s.root, "workspace") }
func (s *Store) artifactsDir() string { return filepath.Join(s.root, "artifacts") }
func (s *Store) logsDir() string      { return filepath.Join(s.root, "logs") }

// PersistWorkspace copies the given paths, relative to root, into the run
// workspace. The relative layout is preserved so a later attach reproduces
// the paths exactly as persisted.
func (s *Store) PersistWorkspace(root string, paths []string) error {
	for _, p := range paths {
		src := filepath.Join(root, p)
		dst := filepath.Join(s.workspaceDir(), p)
		if err := fs.CopyTree(src, dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to persist to workspace"), "path", p)
		}
	}
	return nil
}

// AttachWorkspace materializes the run workspace into the directory at.
func (s *Store) AttachWorkspace(at string) error {
	entries, err := os.ReadDir(s.workspaceDir())
	if err != nil {
		return zerr.Wrap(err, "failed to read workspace")
	}
	for _, e := range entries {
		src := filepath.Join(s.workspaceDir(), e.Name())
		dst := filepath.Join(at, e.Name())
		if err := fs.CopyTree(src, dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to attach workspace"), "path", e.Name())
		}
	}
	return nil
}

// StoreArtifact copies the file or tree at path into the job's artifact
// directory and returns a checksummed record.
func (s *Store) StoreArtifact(job, path, destination string) (domain.ArtifactRecord, error) {
	if destination == "" {
		destination = filepath.Base(path)
	}

	dst := filepath.Join(s.artifactsDir(), job, destination)
	if err := fs.CopyTree(path, dst); err != nil {
		return domain.ArtifactRecord{}, zerr.With(zerr.Wrap(err, "failed to store artifact"), "path", path)
	}

	checksum, size, err := fs.HashTree(dst)
	if err != nil {
		return domain.ArtifactRecord{}, err
	}

	return domain.ArtifactRecord{
		Job:         job,
		Path:        path,
		Destination: destination,
		Checksum:    checksum,
		Size:        size,
	}, nil
}

// LogWriter returns a writer for the captured output of one job axis.
// The default axis logs to <job>.log; matrix axes get a digest suffix.
func (s *Store) LogWriter(job, axis string) (io.WriteCloser, error) {
	name := job + ".log"
	if axis != "" && axis != "default" {
		name = job + "-" + fs.DigestString(axis)[:8] + ".log"
	}

	f, err := os.OpenFile(filepath.Join(s.logsDir(), name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640) //nolint:gosec // path is derived from job name
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create job log"), "job", job)
	}
	return f, nil
}
