package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relay/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCopyTree_File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "a.txt")
	writeFile(t, src, "content")

	dst := filepath.Join(dir, "out", "nested", "a.txt")
	require.NoError(t, fs.CopyTree(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestCopyTree_Directory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "index.html"), "<html>")
	writeFile(t, filepath.Join(src, "sub", "page.html"), "<p>")

	dst := filepath.Join(dir, "dst")
	require.NoError(t, fs.CopyTree(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "sub", "page.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>", string(data))
}

func TestCopyTree_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := fs.CopyTree(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
}

func TestHashTree_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "aaa")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "bbb")

	h1, size, err := fs.HashTree(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)

	h2, _, err := fs.HashTree(dir)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestHashTree_ContentSensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	writeFile(t, path, "one")
	h1, _, err := fs.HashTree(path)
	require.NoError(t, err)

	writeFile(t, path, "two")
	h2, _, err := fs.HashTree(path)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestDigestString_Stable(t *testing.T) {
	assert.Equal(t, fs.DigestString("key"), fs.DigestString("key"))
	assert.NotEqual(t, fs.DigestString("key"), fs.DigestString("other"))
}
