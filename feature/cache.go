package feature

import (
	"bytes"
	"encoding/gob"
	"hash/fnv"
	"os"
	"strconv"

	lru "github.com/hashicorp/golang-lru"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

// ErrCacheMiss is returned by a Cacher that does not hold a vector for a key.
var ErrCacheMiss = errors.New("cache miss error")

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// Cacher models a way to cache (either persistent or not) parsed feature vectors.
type Cacher interface {
	Get(key string) (Vector, error)
	Set(key string, v Vector) error
}

type mapCache map[string]Vector

func (m mapCache) Get(key string) (Vector, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return nil, ErrCacheMiss
}

func (m mapCache) Set(key string, v Vector) error {
	m[key] = v
	return nil
}

// NewMapCache creates a vector cache out of a regular go map.
func NewMapCache() Cacher {
	return mapCache{}
}

type lruCache struct {
	*lru.Cache
}

func (l lruCache) Get(key string) (Vector, error) {
	if v, ok := l.Cache.Get(key); ok {
		return v.(Vector), nil
	}
	return nil, ErrCacheMiss
}

func (l lruCache) Set(key string, v Vector) error {
	l.Cache.Add(key, v)
	return nil
}

// NewLRUCache creates an in-memory cache holding at most size vectors.
func NewLRUCache(size int) (Cacher, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return lruCache{c}, nil
}

type diskvCache struct {
	*diskv.Diskv
}

func (d diskvCache) Get(key string) (Vector, error) {
	b, err := d.Read(key)
	if err != nil {
		return nil, ErrCacheMiss
	}
	var v Vector
	err = gob.NewDecoder(bytes.NewReader(b)).Decode(&v)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (d diskvCache) Set(key string, v Vector) error {
	var buff bytes.Buffer
	err := gob.NewEncoder(&buff).Encode(v)
	if err != nil {
		return err
	}
	return d.Write(key, buff.Bytes())
}

// NewDiskvCache creates a new on-disk cache with the specified diskv parameters.
func NewDiskvCache(dv *diskv.Diskv) Cacher {
	return diskvCache{dv}
}

// NewDiskCache creates an on-disk cache rooted at dir.
func NewDiskCache(dir string) Cacher {
	return NewDiskvCache(diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    BlockTransform(4),
		CacheSizeMax: 1024 * 1024,
	}))
}

// CachedParser parses feature files through a cache. Entries are keyed on the path, size and
// modification time of the file, so an edited file is parsed again.
type CachedParser struct {
	Parser Parser
	Cache  Cacher
}

// NewCachedParser caches the vectors produced by p in c.
func NewCachedParser(p Parser, c Cacher) CachedParser {
	return CachedParser{Parser: p, Cache: c}
}

// Parse implements Parser. A cache that fails to store a vector does not fail the parse.
func (c CachedParser) Parse(path string) (Vector, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(ErrSampleRead, "%s: %v", path, err)
	}

	key := Key(path, info)
	if v, err := c.Cache.Get(key); err == nil {
		return v, nil
	}

	v, err := c.Parser.Parse(path)
	if err != nil {
		return nil, err
	}
	_ = c.Cache.Set(key, v)
	return v, nil
}

// Key identifies the contents of a feature file for caching.
func Key(path string, info os.FileInfo) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	h.Write([]byte(strconv.FormatInt(info.Size(), 10)))
	h.Write([]byte(strconv.FormatInt(info.ModTime().UnixNano(), 10)))
	return strconv.FormatUint(h.Sum64(), 16)
}
