// Package category reads the manifest of category directories that make up a training run.
package category

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrManifestOpen is returned when the manifest file cannot be opened. Without a manifest no
// samples can be gathered, so this error is fatal to a run.
var ErrManifestOpen = errors.New("could not open manifest")

// Category is a directory of feature files and the label its samples are trained with. A
// Category read from a manifest has no label yet; labels are assigned in manifest order by the
// dataset package.
type Category struct {
	Dir   string
	Label int
}

// String returns the directory of the category.
func (c Category) String() string {
	return c.Dir
}

// Load reads the manifest at path. See Read for the format.
func Load(path string) ([]Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrManifestOpen, "%s: %v", path, err)
	}
	defer f.Close()

	categories, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}
	return categories, nil
}

// Read parses a manifest: one category directory per line, in order. Blank lines are skipped
// and do not take a slot. Lines are used as they are; there are no comments or quoting.
func Read(r io.Reader) ([]Category, error) {
	var categories []Category
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		categories = append(categories, Category{Dir: line})
	}
	return categories, scanner.Err()
}
