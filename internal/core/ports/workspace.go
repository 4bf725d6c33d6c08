package ports

import (
	"io"

	"go.trai.ch/relay/internal/core/domain"
)

// ArtifactStore manages the run-scoped workspace, stored artifacts and job logs.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type ArtifactStore interface {
	// PersistWorkspace copies the given paths, relative to root, into the
	// run workspace, preserving their relative layout.
	PersistWorkspace(root string, paths []string) error

	// AttachWorkspace materializes the run workspace into the directory at,
	// reproducing the relative layout produced by PersistWorkspace.
	AttachWorkspace(at string) error

	// StoreArtifact copies the file or tree at path into the run's artifact
	// directory for the job and returns its checksummed record.
	StoreArtifact(job, path, destination string) (domain.ArtifactRecord, error)

	// LogWriter returns a writer for the captured output of one job axis.
	LogWriter(job, axis string) (io.WriteCloser, error)
}
