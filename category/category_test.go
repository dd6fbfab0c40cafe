package category_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hscells/covlearn/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     []string
	}{
		{"empty", "", nil},
		{"single", "catA\n", []string{"catA"}},
		{"no trailing newline", "catA\ncatB", []string{"catA", "catB"}},
		{"blank lines", "\ncatA\n\n\ncatB\n\n", []string{"catA", "catB"}},
		{"paths kept verbatim", "data/cat A\n/abs/catB\n", []string{"data/cat A", "/abs/catB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories, err := category.Read(strings.NewReader(tt.manifest))
			require.NoError(t, err)

			var dirs []string
			for _, c := range categories {
				assert.Zero(t, c.Label)
				dirs = append(dirs, c.Dir)
			}
			assert.Equal(t, tt.want, dirs)
		})
	}
}

func TestLoad(t *testing.T) {
	categories, err := category.Load(filepath.Join("testdata", "manifest.txt"))
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "tables", categories[0].Dir)
	assert.Equal(t, "chairs", categories[1].Dir)
	assert.Equal(t, "mugs", categories[2].Dir)
}

func TestLoadMissing(t *testing.T) {
	_, err := category.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, category.ErrManifestOpen))
}
