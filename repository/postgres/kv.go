package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/tidydo/repository"
)

type kvStore struct {
	pool *pgxpool.Pool
}

// NewKVStore returns a Postgres-backed KVStore over the kv_entries table.
func NewKVStore(pool *pgxpool.Pool) repository.KVStore {
	return &kvStore{pool: pool}
}

func (r *kvStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	const query = `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return json.RawMessage(value), true, nil
}

func (r *kvStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	const query = `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, key, []byte(value))
	return err
}

func (r *kvStore) Keys(ctx context.Context) ([]string, error) {
	const query = `SELECT key FROM kv_entries ORDER BY key`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *kvStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE key = $1`
	_, err := r.pool.Exec(ctx, query, key)
	return err
}

func (r *kvStore) Clear(ctx context.Context) error {
	const query = `DELETE FROM kv_entries`
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *kvStore) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *kvStore) Close() error {
	r.pool.Close()
	return nil
}
