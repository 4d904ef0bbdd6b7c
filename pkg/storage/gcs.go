package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/charmbracelet/log"
)

// GCSFS is a [Filesystem] over objects in a Google Cloud Storage bucket.
// File names are object names below the configured prefix.
type GCSFS struct {
	client *gcs.Client
	bucket *gcs.BucketHandle
	prefix string
	logger *log.Logger
}

// NewGCS connects to the bucket named in uri ("gs://bucket/dir") using
// application default credentials.
func NewGCS(ctx context.Context, uri string, opts ...Option) (*GCSFS, error) {
	bucket, prefix, err := parseGCSURI(uri)
	if err != nil {
		return nil, err
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, ioFailure(BackendGCS, "connect", uri, err)
	}
	s := newSettings(opts)
	return &GCSFS{client: client, bucket: client.Bucket(bucket), prefix: prefix, logger: s.logger}, nil
}

// parseGCSURI splits "gs://bucket/some/dir" into ("bucket", "some/dir").
func parseGCSURI(uri string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(uri, SchemeGCS)
	if !ok {
		return "", "", ioFailure(BackendGCS, "parse", uri, errors.New("missing gs:// scheme"))
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", ioFailure(BackendGCS, "parse", uri, errors.New("missing bucket"))
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

func (g *GCSFS) object(name string) string {
	return path.Join(g.prefix, cleanName(name))
}

func (g *GCSFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	obj := g.object(name)
	r, err := g.bucket.Object(obj).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, notFound(BackendGCS, obj, err)
		}
		return nil, ioFailure(BackendGCS, "read", obj, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ioFailure(BackendGCS, "read", obj, err)
	}
	return data, nil
}

// WriteFile uploads data in one object write. GCS object writes are atomic:
// the object becomes visible only when the writer is closed successfully.
func (g *GCSFS) WriteFile(ctx context.Context, name string, data []byte) error {
	obj := g.object(name)
	w := g.bucket.Object(obj).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return ioFailure(BackendGCS, "write", obj, err)
	}
	if err := w.Close(); err != nil {
		return ioFailure(BackendGCS, "write", obj, err)
	}
	g.logger.Debug("wrote object", "bucket", g.bucket.BucketName(), "object", obj, "bytes", len(data))
	return nil
}

func (g *GCSFS) Exists(ctx context.Context, name string) (bool, error) {
	obj := g.object(name)
	_, err := g.bucket.Object(obj).Attrs(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gcs.ErrObjectNotExist):
		return false, nil
	}
	return false, ioFailure(BackendGCS, "stat", obj, err)
}

func (g *GCSFS) Close() error { return g.client.Close() }

var _ Filesystem = (*GCSFS)(nil)
