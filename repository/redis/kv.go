package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/tidydo/repository"
)

const (
	defaultPrefix = "tidydo:"
	scanCount     = 100
)

type kvStore struct {
	client *redislib.Client
	prefix string
}

// NewKVStore creates a Redis-backed KVStore. Every key is namespaced under prefix.
func NewKVStore(client *redislib.Client, prefix string) repository.KVStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &kvStore{
		client: client,
		prefix: prefix,
	}
}

func (r *kvStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	result, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return json.RawMessage(result), true, nil
}

func (r *kvStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	return r.client.Set(ctx, r.key(key), []byte(value), 0).Err()
}

func (r *kvStore) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *kvStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Clear removes only keys under this store's prefix.
func (r *kvStore) Clear(ctx context.Context) error {
	keys, err := r.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.key(k))
	}
	return r.client.Del(ctx, full...).Err()
}

func (r *kvStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *kvStore) Close() error {
	return r.client.Close()
}

func (r *kvStore) key(k string) string {
	return fmt.Sprintf("%s%s", r.prefix, k)
}
