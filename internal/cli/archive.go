package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/storage"
)

// archive is a loaded graph info and the storage it was read from.
type archive struct {
	uri   string
	fs    storage.Filesystem
	graph *info.GraphInfo
}

func (a *archive) Close() error { return a.fs.Close() }

// storageLocation splits a graph file argument into the storage URI to open
// and the name of the graph document within it.
func (c *CLI) storageLocation(graphFile string) (uri, name string) {
	uri = c.storageURI
	if uri == "" {
		uri = c.config.Storage.Root
	}
	if uri != "" {
		return uri, filepath.ToSlash(graphFile)
	}
	return filepath.Dir(graphFile), filepath.Base(graphFile)
}

// openArchive loads the graph file and every member document it lists.
func (c *CLI) openArchive(ctx context.Context, graphFile string) (*archive, error) {
	uri, name := c.storageLocation(graphFile)
	fs, err := storage.Open(ctx, uri, c.config.StorageOptions(c.Logger)...)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	prog := newProgress(c.Logger)
	g, err := info.LoadGraphInfo(ctx, fs, name)
	if err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("load %s: %w", graphFile, err)
	}
	prog.done(fmt.Sprintf("Loaded graph %s from %s", g.Name(), storage.Backend(fs)))
	return &archive{uri: uri, fs: fs, graph: g}, nil
}
