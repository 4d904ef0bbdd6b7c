package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
)

// FileCache implements a file-based cache for CLI usage.
// Cache entries are stored as JSON files with their expiration.
type FileCache struct {
	fs  billy.Filesystem
	now func() time.Time
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return NewBillyCache(osfs.New(dir)), nil
}

// NewBillyCache creates a file-based cache on any billy filesystem.
func NewBillyCache(bfs billy.Filesystem) *FileCache {
	return &FileCache{fs: bfs, now: time.Now}
}

// cacheEntry wraps cached data with metadata.
type cacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the cache. Unreadable and expired entries are
// removed and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	name := entryName(key)

	data, err := util.ReadFile(c.fs, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = c.fs.Remove(name)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && c.now().After(entry.ExpiresAt) {
		_ = c.fs.Remove(name)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set stores a value in the cache. The entry file is replaced atomically,
// so concurrent readers never see a partial entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = c.now().Add(ttl)
	}
	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	name := entryName(key)
	if err := c.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return err
	}
	tmp := name + ".tmp-" + uuid.NewString()
	if err := util.WriteFile(c.fs, tmp, entryData, 0o644); err != nil {
		_ = c.fs.Remove(tmp)
		return err
	}
	if err := c.fs.Rename(tmp, name); err != nil {
		_ = c.fs.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := c.fs.Remove(entryName(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// entryName converts a cache key to a file name. The first two hash
// characters name a subdirectory to avoid too many files in one directory.
func entryName(key string) string {
	hash := Hash([]byte(key))
	return path.Join(hash[:2], hash[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
