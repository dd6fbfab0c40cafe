// Package sample enumerates the candidate feature files of a category directory.
package sample

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrDirectoryOpen is returned when a category directory cannot be read. It is not fatal to a
// run: the category contributes no samples.
var ErrDirectoryOpen = errors.New("could not open directory")

// Enumerator lists the feature files of a category directory.
type Enumerator interface {
	List(dir string) ([]string, error)
}

// DirectoryEnumerator lists every entry of a directory on the local file system.
type DirectoryEnumerator struct{}

// List implements Enumerator.
func (DirectoryEnumerator) List(dir string) ([]string, error) {
	return List(dir)
}

// List returns the path of every entry in dir. The self and parent entries are never included.
// Callers must not rely on the order of the result.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(ErrDirectoryOpen, "%s: %v", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name() == "." || entry.Name() == ".." {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
