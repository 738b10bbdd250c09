package records

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository"
)

// Option customises a record repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the timestamp source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// collection is a JSON array persisted whole under a single key. Every mutation is a
// read-modify-write of the full array; mu serialises writers within this process only.
type collection[T any] struct {
	kv  repository.KVStore
	key string
	mu  sync.Mutex
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeStorage, "read "+c.key, err)
	}
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, domain.WrapError(domain.ErrCodeValidation, "decode "+c.key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *collection[T]) store(ctx context.Context, values []T) error {
	if values == nil {
		values = []T{}
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return domain.WrapError(domain.ErrCodeValidation, "encode "+c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, payload); err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "write "+c.key, err)
	}
	return nil
}

// upsert replaces the element matching id or appends v.
func upsert[T any](values []T, v T, id string, idOf func(T) string) []T {
	for i := range values {
		if idOf(values[i]) == id {
			values[i] = v
			return values
		}
	}
	return append(values, v)
}

func without[T any](values []T, keep func(T) bool) []T {
	out := values[:0]
	for _, v := range values {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
