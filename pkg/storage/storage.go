// Package storage provides the filesystem abstraction used to persist graph
// schemas and to read archive count files.
//
// A [Filesystem] reads and writes whole files addressed by slash-separated
// names. Implementations exist for different backends:
//   - local: a directory on disk (go-billy osfs)
//   - memory: an in-process tree for tests and dry runs (go-billy memfs)
//   - gcs: a Google Cloud Storage bucket and object prefix
//   - redis: one key per file under a key prefix
//   - mongo: one document per file in a collection
//
// # Usage
//
// Pick a backend by URI:
//
//	fs, err := storage.Open(ctx, "gs://my-bucket/archives", storage.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer fs.Close()
//
//	g, err := info.LoadGraphInfo(ctx, fs, "ldbc/ldbc.graph.yml")
//
// Missing files are reported as NOT_FOUND errors, every other backend
// failure as IO_ERROR (see package errors).
package storage

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/observability"
)

// Filesystem reads and writes whole files by slash-separated name.
// Implementations are safe for concurrent use.
type Filesystem interface {
	// ReadFile returns the content of name, or a NOT_FOUND error.
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// WriteFile replaces the content of name. A failed write leaves any
	// previous content in place.
	WriteFile(ctx context.Context, name string, data []byte) error

	// Exists reports whether name is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Close releases backend connections.
	Close() error
}

// URI schemes understood by [Open].
const (
	SchemeFile   = "file://"
	SchemeMemory = "mem://"
	SchemeGCS    = "gs://"
	SchemeRedis  = "redis://"
	SchemeRedisS = "rediss://"
	SchemeMongo  = "mongodb://"
	SchemeMongoS = "mongodb+srv://"
)

// Defaults for the key-value backends.
const (
	DefaultRedisKeyPrefix  = "graphar:"
	DefaultMongoDatabase   = "graphar"
	DefaultMongoCollection = "files"
)

type settings struct {
	logger          *log.Logger
	redisKeyPrefix  string
	mongoDatabase   string
	mongoCollection string
}

// Option configures [Open] and the backend constructors.
type Option func(*settings)

// WithLogger sets the logger backends report to. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRedisKeyPrefix sets the prefix prepended to every Redis key.
func WithRedisKeyPrefix(prefix string) Option {
	return func(s *settings) { s.redisKeyPrefix = prefix }
}

// WithMongoCollection sets the database and collection of the Mongo backend.
// Empty values keep the defaults.
func WithMongoCollection(database, collection string) Option {
	return func(s *settings) {
		if database != "" {
			s.mongoDatabase = database
		}
		if collection != "" {
			s.mongoCollection = collection
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:          log.New(io.Discard),
		redisKeyPrefix:  DefaultRedisKeyPrefix,
		mongoDatabase:   DefaultMongoDatabase,
		mongoCollection: DefaultMongoCollection,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Open returns the backend selected by uri:
//
//	mem://                     in-memory
//	gs://bucket/dir            Google Cloud Storage
//	redis://host:6379/0        Redis
//	mongodb://host:27017       MongoDB
//	file:///data, ./data       local directory
//
// Every backend is instrumented with [observability.Storage] hooks.
func Open(ctx context.Context, uri string, opts ...Option) (Filesystem, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "storage URI cannot be empty")
	}
	s := newSettings(opts)

	var (
		fs      Filesystem
		backend string
		err     error
	)
	switch {
	case strings.HasPrefix(uri, SchemeMemory):
		fs, backend = NewMemory(opts...), BackendMemory
	case strings.HasPrefix(uri, SchemeGCS):
		fs, err = NewGCS(ctx, uri, opts...)
		backend = BackendGCS
	case strings.HasPrefix(uri, SchemeRedis), strings.HasPrefix(uri, SchemeRedisS):
		fs, err = NewRedis(ctx, uri, opts...)
		backend = BackendRedis
	case strings.HasPrefix(uri, SchemeMongo), strings.HasPrefix(uri, SchemeMongoS):
		fs, err = NewMongo(ctx, uri, opts...)
		backend = BackendMongo
	default:
		fs, err = NewLocal(strings.TrimPrefix(uri, SchemeFile), opts...)
		backend = BackendLocal
	}
	if err != nil {
		return nil, err
	}
	s.logger.Debug("opened storage", "backend", backend, "uri", redactURI(uri))
	return &observed{Filesystem: fs, backend: backend}, nil
}

// Backend names reported to hooks and logs.
const (
	BackendLocal  = "local"
	BackendMemory = "memory"
	BackendGCS    = "gcs"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// observed reports every operation to the registered storage hooks.
type observed struct {
	Filesystem
	backend string
}

func (o *observed) ReadFile(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	data, err := o.Filesystem.ReadFile(ctx, name)
	observability.Storage().OnRead(ctx, o.backend, name, len(data), time.Since(start), err)
	return data, err
}

func (o *observed) WriteFile(ctx context.Context, name string, data []byte) error {
	start := time.Now()
	err := o.Filesystem.WriteFile(ctx, name, data)
	observability.Storage().OnWrite(ctx, o.backend, name, len(data), time.Since(start), err)
	return err
}

func (o *observed) Exists(ctx context.Context, name string) (bool, error) {
	found, err := o.Filesystem.Exists(ctx, name)
	observability.Storage().OnExists(ctx, o.backend, name, found, err)
	return found, err
}

// Backend returns the backend name of a filesystem returned by [Open], or
// "" for other implementations.
func Backend(fs Filesystem) string {
	if o, ok := fs.(*observed); ok {
		return o.backend
	}
	return ""
}

// redactURI drops credentials from a connection URI before logging it.
func redactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		if slash := strings.Index(rest, "/"); slash < 0 || at < slash {
			rest = "***@" + rest[at+1:]
		}
	}
	return scheme + "://" + rest
}

func notFound(backend, name string, cause error) error {
	return errors.Wrap(errors.ErrCodeNotFound, cause, "%s: %s not found", backend, name)
}

func ioFailure(backend, op, name string, cause error) error {
	return errors.Wrap(errors.ErrCodeIO, cause, "%s: %s %s", backend, op, name)
}

// cleanName normalizes a file name to a slash path without a leading "./".
func cleanName(name string) string {
	name = strings.TrimPrefix(name, "./")
	return strings.TrimLeft(name, "/")
}
