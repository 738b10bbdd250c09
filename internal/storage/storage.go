package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/internal/config"
	"github.com/fastygo/tidydo/internal/infrastructure/bolt"
	"github.com/fastygo/tidydo/internal/infrastructure/postgres"
	redisinfra "github.com/fastygo/tidydo/internal/infrastructure/redis"
	"github.com/fastygo/tidydo/internal/infrastructure/sqlite"
	"github.com/fastygo/tidydo/repository"
	"github.com/fastygo/tidydo/repository/memory"
	pgrepo "github.com/fastygo/tidydo/repository/postgres"
	redisrepo "github.com/fastygo/tidydo/repository/redis"
)

// Open connects the KV backend named by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KVStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	backend := cfg.Storage.Backend
	logger = logger.With(zap.String("backend", backend))

	switch backend {
	case config.BackendBolt:
		store, err := bolt.Open(cfg.Storage.BoltPath, cfg.Storage.BoltBucket)
		if err != nil {
			return nil, fmt.Errorf("open bolt store %s: %w", cfg.Storage.BoltPath, err)
		}
		logger.Info("storage opened", zap.String("path", cfg.Storage.BoltPath))
		return store, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.Storage.SQLitePath, err)
		}
		logger.Info("storage opened", zap.String("path", cfg.Storage.SQLitePath))
		return store, nil

	case config.BackendRedis:
		client, err := redisinfra.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("storage opened", zap.String("prefix", cfg.Storage.RedisKeyPrefix))
		return redisrepo.NewKVStore(client, cfg.Storage.RedisKeyPrefix), nil

	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgrepo.NewKVStore(pool), nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage, data is lost on exit")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
