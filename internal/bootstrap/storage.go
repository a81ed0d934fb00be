// Package bootstrap assembles infrastructure adapters from configuration. It
// is the only place that knows which concrete store backs the repository port.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/cache"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-hexagonal-users/internal/infrastructure/postgres"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
)

// Storage is an opened user store plus the teardown for everything behind it.
type Storage struct {
	Users   repository.UserRepository
	closers []func()
}

// Close releases resources in reverse order of acquisition.
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// OpenStorage selects the backing store from cfg.StorageDriver. Postgres is
// migrated before use. When REDIS_ADDR is set the store is wrapped in the
// read-through cache.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Storage, error) {
	s := &Storage{}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory user storage; data is lost on restart")
		s.Users = memory.NewUserRepository()
	case config.StoragePostgres:
		dsn := cfg.PostgresDSN()
		pool, err := pginfra.NewPool(ctx, dsn, pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		if err := pginfra.RunMigrations(dsn, logger); err != nil {
			s.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		s.Users = pginfra.NewUserRepository(pool)
	default:
		return nil, config.ErrUnknownStorage
	}

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		s.closers = append(s.closers, func() { _ = rdb.Close() })
		s.Users = cache.NewUserRepository(s.Users, rdb, cfg.UserCacheTTL, logger)
		logger.WithField("addr", cfg.RedisAddr).Info("user cache enabled")
	}

	return s, nil
}
