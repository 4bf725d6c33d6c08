package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// HashTree computes an XXHash digest over the file or directory at path,
// together with the total content size. Directory entries are hashed in
// sorted relative-path order so the digest is deterministic.
func HashTree(path string) (string, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	hasher := xxhash.New()
	var size int64

	if !info.IsDir() {
		n, err := hashFile(path, hasher)
		if err != nil {
			return "", 0, err
		}
		return fmt.Sprintf("%016x", hasher.Sum64()), n, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to walk tree"), "path", path)
	}
	slices.Sort(files)

	for _, f := range files {
		rel, err := filepath.Rel(path, f)
		if err != nil {
			return "", 0, err
		}
		_, _ = hasher.WriteString(rel)
		_, _ = hasher.Write([]byte{0})
		n, err := hashFile(f, hasher)
		if err != nil {
			return "", 0, err
		}
		size += n
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), size, nil
}

func hashFile(path string, w io.Writer) (int64, error) {
	f, err := os.Open(path) //nolint:gosec // path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	n, err := io.Copy(w, f)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return n, nil
}

// DigestString returns a short stable hex digest of s, used to derive
// directory names from cache keys and axis labels.
func DigestString(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}
