// Package kv provides the durable snapshot storage behind the record store:
// whole-collection JSON blobs saved under stable keys, with interchangeable
// filesystem, MongoDB and in-memory drivers.
package kv

import (
	"context"
	"fmt"

	"github.com/adnanfarms/chickledger/internal/config"
)

// Store is the persistence surface the record store and the aggregation
// engine write through. Load returns (nil, nil) when no blob exists for the
// key; a missing key is not an error.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close(ctx context.Context) error
}

// Open selects a Store implementation from the storage configuration.
//
//	fs      — one JSON file per key under cfg.DataDir (default)
//	mongodb — one document per key in a snapshots collection
//	memory  — process-local, for tests and ephemeral runs
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverFS:
		return NewFilesystem(cfg.DataDir)
	case config.StorageDriverMongoDB:
		return NewMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	case config.StorageDriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
