package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openshelf/biblio-admin/config"
	"github.com/openshelf/biblio-admin/internal/adapters/filestore"
	"github.com/openshelf/biblio-admin/internal/adapters/memstore"
	"github.com/openshelf/biblio-admin/internal/adapters/redisstore"
	"github.com/openshelf/biblio-admin/internal/ports"
)

// ConnectRedis establishes a connection to Redis and verifies it with a ping.
//
//nolint:ireturn // redis.UniversalClient keeps the store agnostic of the client flavor.
func ConnectRedis(cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		logger.Info("redis connected", "addr", cfg.Addr, "db", cfg.DB)
	}
	return client, nil
}

// BuildCredentialStore constructs the credential store named by the storage
// backend configuration.
//
//nolint:ireturn // the backend is chosen at runtime.
func BuildCredentialStore(cfg config.AppConfig, logger *slog.Logger) (ports.CredentialStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return memstore.New(), nil

	case config.StorageBackendFile:
		dir := cfg.Storage.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve home directory: %w", err)
			}
			dir = filepath.Join(home, ".biblio-admin")
		}
		return filestore.New(filestore.Options{
			Dir:          dir,
			PollInterval: cfg.Storage.PollInterval,
		})

	case config.StorageBackendRedis:
		client, err := ConnectRedis(cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return redisstore.NewWithPrefix(client, cfg.Redis.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}
