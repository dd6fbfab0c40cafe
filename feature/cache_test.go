package feature_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hscells/covlearn/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingParser struct {
	calls int
}

func (p *countingParser) Parse(path string) (feature.Vector, error) {
	p.calls++
	return feature.Parse(path)
}

func TestCachers(t *testing.T) {
	lruCache, err := feature.NewLRUCache(8)
	require.NoError(t, err)

	cachers := map[string]feature.Cacher{
		"map":   feature.NewMapCache(),
		"lru":   lruCache,
		"diskv": feature.NewDiskCache(t.TempDir()),
	}

	v := feature.Vector{{Index: 1, Value: 0.25}, {Index: 2, Value: -4}, feature.Sentinel}
	for name, c := range cachers {
		t.Run(name, func(t *testing.T) {
			_, err := c.Get("0123456789abcdef")
			assert.ErrorIs(t, err, feature.ErrCacheMiss)

			require.NoError(t, c.Set("0123456789abcdef", v))
			got, err := c.Get("0123456789abcdef")
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestCachedParser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.cov")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3"), 0644))

	counter := &countingParser{}
	p := feature.NewCachedParser(counter, feature.NewMapCache())

	first, err := p.Parse(path)
	require.NoError(t, err)
	second, err := p.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, counter.calls)

	// Changing the file invalidates the entry.
	require.NoError(t, os.WriteFile(path, []byte("1 2 3 4"), 0644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := p.Parse(path)
	require.NoError(t, err)
	assert.Len(t, third, 5)
	assert.Equal(t, 2, counter.calls)
}

func TestCachedParserMissing(t *testing.T) {
	p := feature.NewCachedParser(feature.FileParser{}, feature.NewMapCache())
	_, err := p.Parse(filepath.Join(t.TempDir(), "missing.cov"))
	assert.ErrorIs(t, err, feature.ErrSampleRead)
}
