package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/graphar/pkg/cache"
	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/reader"
	"github.com/matzehuels/graphar/pkg/storage"
)

func TestCacheDir(t *testing.T) {
	c := New(io.Discard, LogInfo)
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "graphar"); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}

	c.config.Cache.Dir = "/var/cache/graphar"
	if got, _ := c.cacheDir(); got != "/var/cache/graphar" {
		t.Errorf("cacheDir() with config = %q", got)
	}
}

func TestNewCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.config.Cache.Dir = t.TempDir()

	if _, ok := c.newCache(true).(cache.NullCache); !ok {
		t.Error("newCache(noCache) should not cache")
	}
	if _, ok := c.newCache(false).(*cache.FileCache); !ok {
		t.Error("newCache() should open a file cache")
	}
}

func TestCountSource(t *testing.T) {
	ctx := context.Background()
	c := New(io.Discard, LogInfo)
	opened := 0
	newStore := func() cache.Cache {
		opened++
		return cache.NewMemoryCache()
	}

	local, err := storage.Open(ctx, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.countSource(&archive{fs: local}, newStore).(*reader.ArchiveCounts); !ok || opened != 0 {
		t.Errorf("local archive counts should be read directly (opened %d caches)", opened)
	}

	// A filesystem not opened through storage.Open has no known backend and
	// is treated as remote.
	remote := storage.NewMemory()
	g, err := info.NewGraphInfo("g", nil, nil, "", info.MustParseVersion("gar/v1"))
	if err != nil {
		t.Fatal(err)
	}
	counts := c.countSource(&archive{uri: "gs://bucket/g", fs: remote, graph: g}, newStore)
	if _, ok := counts.(*reader.CachedCounts); !ok || opened != 1 {
		t.Errorf("remote archive counts = %T (opened %d caches), want cached", counts, opened)
	}
}
