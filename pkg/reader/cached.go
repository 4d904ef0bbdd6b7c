package reader

import (
	"context"
	"time"

	"github.com/matzehuels/graphar/pkg/cache"
	"github.com/matzehuels/graphar/pkg/info"
)

// CachedCounts is a [CountSource] that remembers the counts of another
// source. Entries are keyed by namespace and count file path, so one cache
// can serve several archives. Failed lookups are not cached.
type CachedCounts struct {
	inner     CountSource
	cache     cache.Cache
	namespace string
	ttl       time.Duration
}

// NewCachedCounts caches the counts of inner in c for ttl. A ttl <= 0
// never expires. namespace should identify the archive, e.g. its storage URI.
func NewCachedCounts(inner CountSource, c cache.Cache, namespace string, ttl time.Duration) *CachedCounts {
	return &CachedCounts{inner: inner, cache: c, namespace: namespace, ttl: ttl}
}

// lookup returns the cached count of name or loads and caches it. Cache
// failures fall through to load.
func (c *CachedCounts) lookup(ctx context.Context, name string, load func() (int64, error)) (int64, error) {
	key := cache.Key("count", c.namespace, name)
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		if n, err := DecodeCount(data); err == nil {
			return n, nil
		}
	}
	n, err := load()
	if err != nil {
		return 0, err
	}
	_ = c.cache.Set(ctx, key, EncodeCount(n), c.ttl)
	return n, nil
}

func (c *CachedCounts) VertexCount(ctx context.Context, g *info.GraphInfo, v *info.VertexInfo) (int64, error) {
	return c.lookup(ctx, g.Prefix()+v.GetVerticesNumFilePath(), func() (int64, error) {
		return c.inner.VertexCount(ctx, g, v)
	})
}

func (c *CachedCounts) AdjListVertexCount(ctx context.Context, g *info.GraphInfo, e *info.EdgeInfo, t info.AdjListType) (int64, error) {
	p, err := e.GetVerticesNumFilePath(t)
	if err != nil {
		return 0, err
	}
	return c.lookup(ctx, g.Prefix()+p, func() (int64, error) {
		return c.inner.AdjListVertexCount(ctx, g, e, t)
	})
}

func (c *CachedCounts) EdgeCount(ctx context.Context, g *info.GraphInfo, e *info.EdgeInfo, t info.AdjListType, part int64) (int64, error) {
	p, err := e.GetEdgesNumFilePath(part, t)
	if err != nil {
		return 0, err
	}
	return c.lookup(ctx, g.Prefix()+p, func() (int64, error) {
		return c.inner.EdgeCount(ctx, g, e, t, part)
	})
}

var _ CountSource = (*CachedCounts)(nil)
