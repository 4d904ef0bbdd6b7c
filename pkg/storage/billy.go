package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
)

// BillyFS is a [Filesystem] over a go-billy filesystem. It backs both the
// local and the in-memory backends.
//
// Writes go to a uniquely named temporary file next to the target which is
// then renamed into place, so readers never observe a partial file.
type BillyFS struct {
	fs      billy.Filesystem
	backend string
	logger  *log.Logger
}

// NewLocal returns a filesystem rooted at dir on local disk.
func NewLocal(dir string, opts ...Option) (*BillyFS, error) {
	if dir == "" {
		dir = "."
	}
	st, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(BackendLocal, dir, err)
		}
		return nil, ioFailure(BackendLocal, "stat", dir, err)
	}
	if !st.IsDir() {
		return nil, ioFailure(BackendLocal, "open", dir, errors.New("not a directory"))
	}
	return NewBilly(osfs.New(dir), BackendLocal, opts...), nil
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory(opts ...Option) *BillyFS {
	return NewBilly(memfs.New(), BackendMemory, opts...)
}

// NewBilly wraps an existing billy filesystem. backend names it in errors
// and logs.
func NewBilly(bfs billy.Filesystem, backend string, opts ...Option) *BillyFS {
	s := newSettings(opts)
	return &BillyFS{fs: bfs, backend: backend, logger: s.logger}
}

// Billy returns the underlying billy filesystem.
func (b *BillyFS) Billy() billy.Filesystem { return b.fs }

func (b *BillyFS) ReadFile(_ context.Context, name string) ([]byte, error) {
	name = cleanName(name)
	data, err := util.ReadFile(b.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(b.backend, name, err)
		}
		return nil, ioFailure(b.backend, "read", name, err)
	}
	return data, nil
}

func (b *BillyFS) WriteFile(_ context.Context, name string, data []byte) error {
	name = cleanName(name)
	if dir := path.Dir(name); dir != "." {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return ioFailure(b.backend, "mkdir", dir, err)
		}
	}
	tmp := name + ".tmp-" + uuid.NewString()
	if err := util.WriteFile(b.fs, tmp, data, 0o644); err != nil {
		_ = b.fs.Remove(tmp)
		return ioFailure(b.backend, "write", name, err)
	}
	if err := b.fs.Rename(tmp, name); err != nil {
		_ = b.fs.Remove(tmp)
		return ioFailure(b.backend, "rename", name, err)
	}
	b.logger.Debug("wrote file", "backend", b.backend, "name", name, "bytes", len(data))
	return nil
}

func (b *BillyFS) Exists(_ context.Context, name string) (bool, error) {
	name = cleanName(name)
	_, err := b.fs.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	}
	return false, ioFailure(b.backend, "stat", name, err)
}

func (b *BillyFS) Close() error { return nil }

var _ Filesystem = (*BillyFS)(nil)
