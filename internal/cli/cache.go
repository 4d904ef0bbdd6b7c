package cli

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/graphar/pkg/cache"
	"github.com/matzehuels/graphar/pkg/reader"
	"github.com/matzehuels/graphar/pkg/storage"
)

// cacheDir returns the cache directory: the cache.dir config key, else
// $XDG_CACHE_HOME/graphar, else ~/.cache/graphar.
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCache opens the on-disk count cache. Without a usable directory it
// falls back to caching nothing.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("count cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// countSource returns the count files of a. Counts of remote archives go
// through the cache newStore opens; local and in-memory archives are read
// directly.
func (c *CLI) countSource(a *archive, newStore func() cache.Cache) reader.CountSource {
	counts := reader.NewArchiveCounts(a.fs)
	switch storage.Backend(a.fs) {
	case storage.BackendLocal, storage.BackendMemory:
		return counts
	}
	c.Logger.Debug("caching counts", "backend", storage.Backend(a.fs), "ttl", c.config.Cache.TTL)
	return reader.NewCachedCounts(counts, newStore(), a.uri, c.config.Cache.TTL)
}
