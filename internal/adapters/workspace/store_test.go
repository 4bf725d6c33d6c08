package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relay/internal/adapters/workspace"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestPersistAttach_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := workspace.NewStore(filepath.Join(dir, "run"))
	require.NoError(t, err)

	// Producer job persists doc/_build/html.
	buildRoot := filepath.Join(dir, "doc", "_build")
	writeFile(t, filepath.Join(buildRoot, "html", "index.html"), "<html>")
	writeFile(t, filepath.Join(buildRoot, "html", "api", "kernels.html"), "<p>")

	require.NoError(t, store.PersistWorkspace(buildRoot, []string{"html"}))

	// Consumer job attaches at the same relative layout.
	attachDir := filepath.Join(dir, "deploy")
	require.NoError(t, os.MkdirAll(attachDir, 0o750))
	require.NoError(t, store.AttachWorkspace(attachDir))

	data, err := os.ReadFile(filepath.Join(attachDir, "html", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(data))

	data, err = os.ReadFile(filepath.Join(attachDir, "html", "api", "kernels.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>", string(data))
}

func TestPersistWorkspace_MissingPath(t *testing.T) {
	dir := t.TempDir()
	store, err := workspace.NewStore(filepath.Join(dir, "run"))
	require.NoError(t, err)

	err = store.PersistWorkspace(dir, []string{"nope"})
	assert.Error(t, err)
}

func TestStoreArtifact_ChecksumAndRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := workspace.NewStore(filepath.Join(dir, "run"))
	require.NoError(t, err)

	wheel := filepath.Join(dir, "dist", "grakel-0.1-py3-none-any.whl")
	writeFile(t, wheel, "wheel-bytes")

	rec, err := store.StoreArtifact("build-windows", wheel, "")
	require.NoError(t, err)

	assert.Equal(t, "build-windows", rec.Job)
	assert.Equal(t, "grakel-0.1-py3-none-any.whl", rec.Destination)
	assert.Equal(t, int64(len("wheel-bytes")), rec.Size)
	assert.NotEmpty(t, rec.Checksum)

	// Same content, same checksum.
	rec2, err := store.StoreArtifact("build-windows", wheel, "copy.whl")
	require.NoError(t, err)
	assert.Equal(t, rec.Checksum, rec2.Checksum)

	// The artifact landed in the job's artifact directory.
	stored := filepath.Join(dir, "run", "artifacts", "build-windows", "grakel-0.1-py3-none-any.whl")
	_, err = os.Stat(stored)
	assert.NoError(t, err)
}

func TestLogWriter_AxisNamespacing(t *testing.T) {
	dir := t.TempDir()
	store, err := workspace.NewStore(filepath.Join(dir, "run"))
	require.NoError(t, err)

	w, err := store.LogWriter("python3", "default")
	require.NoError(t, err)
	_, err = w.Write([]byte("make html\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(filepath.Join(dir, "run", "logs", "python3.log"))
	require.NoError(t, err)
	assert.Equal(t, "make html\n", string(data))

	// Matrix axes must not collide with the default log or each other.
	w1, err := store.LogWriter("build", "PYTHON_VERSION=3.7")
	require.NoError(t, err)
	require.NoError(t, w1.Close())
	w2, err := store.LogWriter("build", "PYTHON_VERSION=3.8")
	require.NoError(t, err)
	require.NoError(t, w2.Close())

	entries, err := os.ReadDir(filepath.Join(dir, "run", "logs"))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
