package kv

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBStore keeps one document per key in a snapshots collection, the
// whole collection blob stored as raw bytes.
type MongoDBStore struct {
	client   *mongo.Client
	dbName   string
	collName string
}

type snapshotDoc struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

// NewMongoDB connects to MongoDB and verifies the connection with a ping.
func NewMongoDB(ctx context.Context, uri, dbName string) (*MongoDBStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBStore{
		client:   client,
		dbName:   dbName,
		collName: "snapshots",
	}, nil
}

// Load fetches the blob stored for key, or (nil, nil) when no document exists.
func (s *MongoDBStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDoc
	err := s.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return doc.Data, nil
}

// Save upserts the blob stored for key.
func (s *MongoDBStore) Save(ctx context.Context, key string, data []byte) error {
	doc := snapshotDoc{Key: key, Data: data}
	opts := options.Replace().SetUpsert(true)

	if _, err := s.collection().ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoDBStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoDBStore) collection() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(s.collName)
}
