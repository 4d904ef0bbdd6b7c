package storage

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fileDoc is the document stored per file. The file name is the _id.
type fileDoc struct {
	Name string `bson:"_id"`
	Data []byte `bson:"data"`
}

// MongoFS is a [Filesystem] storing each file as one document of a
// collection.
type MongoFS struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *log.Logger
}

// NewMongo connects to the deployment in uri and checks the connection.
// The database and collection come from [WithMongoCollection].
func NewMongo(ctx context.Context, uri string, opts ...Option) (*MongoFS, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, ioFailure(BackendMongo, "connect", redactURI(uri), err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, ioFailure(BackendMongo, "connect", redactURI(uri), err)
	}
	return NewMongoWithClient(client, opts...), nil
}

// NewMongoWithClient wraps an existing client.
func NewMongoWithClient(client *mongo.Client, opts ...Option) *MongoFS {
	s := newSettings(opts)
	return &MongoFS{
		client: client,
		coll:   client.Database(s.mongoDatabase).Collection(s.mongoCollection),
		logger: s.logger,
	}
}

func (m *MongoFS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	name = cleanName(name)
	var doc fileDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(BackendMongo, name, err)
		}
		return nil, ioFailure(BackendMongo, "find", name, err)
	}
	return doc.Data, nil
}

// WriteFile upserts the document of name. Single-document writes are
// atomic in MongoDB.
func (m *MongoFS) WriteFile(ctx context.Context, name string, data []byte) error {
	name = cleanName(name)
	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": name},
		fileDoc{Name: name, Data: data},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return ioFailure(BackendMongo, "replace", name, err)
	}
	m.logger.Debug("wrote document", "collection", m.coll.Name(), "name", name, "bytes", len(data))
	return nil
}

func (m *MongoFS) Exists(ctx context.Context, name string) (bool, error) {
	name = cleanName(name)
	n, err := m.coll.CountDocuments(ctx, bson.M{"_id": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, ioFailure(BackendMongo, "count", name, err)
	}
	return n > 0, nil
}

func (m *MongoFS) Close() error { return m.client.Disconnect(context.Background()) }

var _ Filesystem = (*MongoFS)(nil)
