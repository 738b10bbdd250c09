package repository

import (
	"context"
	"encoding/json"
)

// KVStore is the key-value collaborator every record repository is built on.
// Values are opaque JSON documents.
type KVStore interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	// Keys returns every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
