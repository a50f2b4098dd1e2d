package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/padraicbc/playcall/config"
	"github.com/padraicbc/playcall/db"
)

// Open builds the slot selected by cfg.StoreBackend. The returned close
// function releases any connection the slot holds.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (Slot, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendFile:
		log.Info("using file store", zap.String("dir", cfg.DataDir))
		return NewFileSlot(cfg.DataDir), noop, nil

	case config.BackendMemory:
		log.Warn("using memory store, predictions will not survive a restart")
		return NewMemorySlot(), noop, nil

	case config.BackendPostgres, config.BackendMySQL:
		bdb, err := db.Setup(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateTables(ctx, bdb); err != nil {
			_ = bdb.Close()
			return nil, nil, err
		}
		log.Info("using sql store", zap.String("backend", cfg.StoreBackend))
		return NewSQLSlot(bdb), bdb.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("using redis store", zap.String("addr", cfg.RedisAddr))
		return NewRedisSlot(client), client.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
