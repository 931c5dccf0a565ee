package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheFile is the name of the incremental cache in the target directory.
const cacheFile = ".findergen.cache"

// cacheVersion is bumped whenever the generated output changes shape, which
// invalidates every cached entry.
const cacheVersion = 1

// Cache remembers the content hash of every unit written by the previous run.
type Cache struct {
	path string

	mu      sync.Mutex
	Version int               `msgpack:"version"`
	Hashes  map[string]string `msgpack:"hashes"`
}

// OpenCache reads the cache of the target directory. A missing, unreadable or
// outdated cache yields an empty one.
func OpenCache(target string) *Cache {
	c := &Cache{
		path:    filepath.Join(target, cacheFile),
		Version: cacheVersion,
		Hashes:  make(map[string]string),
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return c
	}
	var stored Cache
	if err := msgpack.Unmarshal(data, &stored); err != nil || stored.Version != cacheVersion || stored.Hashes == nil {
		return c
	}
	c.Hashes = stored.Hashes
	return c
}

// Unchanged reports whether content is what the previous run wrote to path
// and the file is still there.
func (c *Cache) Unchanged(path string, content []byte) bool {
	c.mu.Lock()
	prev, ok := c.Hashes[path]
	c.mu.Unlock()
	if !ok || prev != hash(content) {
		return false
	}
	_, err := os.Stat(filepath.Join(filepath.Dir(c.path), path))
	return err == nil
}

// Put records the content written to path.
func (c *Cache) Put(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Hashes[path] = hash(content)
}

// Save writes the cache.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := msgpack.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	return os.WriteFile(c.path, data, 0o644)
}

func hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
