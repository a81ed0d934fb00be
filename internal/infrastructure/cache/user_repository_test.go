package cache_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/cache"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/memory"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestUserRepository_RedisDownFallsThrough(t *testing.T) {
	logger, hook := test.NewNullLogger()
	inner := memory.NewUserRepository()
	repo := cache.NewUserRepository(inner, unreachableRedis(t), time.Minute, logger)
	ctx := context.Background()

	u := entity.NewUser(uuid.New(), "a@example.com", "hash")
	saved, err := repo.Save(ctx, u)
	require.NoError(t, err)
	assert.True(t, saved.Equals(u))

	got, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@example.com", got.Email())

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := repo.Delete(ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, ok)

	require.NotEmpty(t, hook.AllEntries())
	for _, e := range hook.AllEntries() {
		assert.Equal(t, logrus.WarnLevel, e.Level)
	}
}

func TestUserRepository_DefaultTTL(t *testing.T) {
	repo := cache.NewUserRepository(memory.NewUserRepository(), unreachableRedis(t), 0, nil)
	assert.Equal(t, cache.DefaultTTL, repo.TTL)
}

// Exercises the hit path against a real server when REDIS_TEST_ADDR is set.
func TestUserRepository_ServesFromCache(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := memory.NewUserRepository()
	repo := cache.NewUserRepository(inner, rdb, time.Minute, nil)
	ctx := context.Background()

	u := entity.NewUser(uuid.New(), "cached@example.com", "hash")
	_, err := repo.Save(ctx, u)
	require.NoError(t, err)

	// remove from the backing store only; the cache still answers
	_, err = inner.Delete(ctx, u.ID())
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cached@example.com", got.Email())
	assert.True(t, u.CreatedAt().Equal(got.CreatedAt()))

	_, err = repo.Delete(ctx, u.ID())
	require.NoError(t, err)
	gone, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// callLog records the order of store and cache operations.
type callLog []string

type loggingRedis struct {
	redis.Cmdable
	calls *callLog
}

func (l loggingRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	*l.calls = append(*l.calls, "redis del")
	return redis.NewIntResult(int64(len(keys)), nil)
}

type loggingStore struct {
	*memory.UserRepository
	calls *callLog
	err   error
}

func (l loggingStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	*l.calls = append(*l.calls, "store delete")
	if l.err != nil {
		return false, l.err
	}
	return l.UserRepository.Delete(ctx, id)
}

func TestUserRepository_DeleteEvictsAfterStore(t *testing.T) {
	ctx := context.Background()

	t.Run("evicts once the row is gone", func(t *testing.T) {
		calls := &callLog{}
		inner := memory.NewUserRepository()
		u := entity.NewUser(uuid.New(), "gone@example.com", "hash")
		_, err := inner.Save(ctx, u)
		require.NoError(t, err)

		repo := cache.NewUserRepository(loggingStore{UserRepository: inner, calls: calls}, loggingRedis{calls: calls}, time.Minute, nil)
		deleted, err := repo.Delete(ctx, u.ID())
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, callLog{"store delete", "redis del"}, *calls)
	})

	t.Run("store failure leaves the cache alone", func(t *testing.T) {
		calls := &callLog{}
		boom := errors.New("store down")
		store := loggingStore{UserRepository: memory.NewUserRepository(), calls: calls, err: boom}

		repo := cache.NewUserRepository(store, loggingRedis{calls: calls}, time.Minute, nil)
		_, err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, callLog{"store delete"}, *calls)
	})
}
