package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no blob is stored under the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore persists opaque blobs under fixed keys. Put overwrites.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Open returns the blob store for the named backend.
func Open(ctx context.Context, backend, dataDir, redisURL string) (BlobStore, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(dataDir)
	case BackendFile:
		return OpenFile(dataDir)
	case BackendRedis:
		return OpenRedis(ctx, redisURL)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
