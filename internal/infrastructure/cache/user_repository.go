// Package cache fronts a user repository with a redis read-through cache for
// lookups by id.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
)

const DefaultTTL = 5 * time.Minute

// UserRepository serves FindByID from redis when possible and delegates
// everything else to Next. Redis failures are logged and bypassed: the cache
// never turns a healthy store into a failing one.
type UserRepository struct {
	Next   repository.UserRepository
	Redis  redis.Cmdable
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewUserRepository(next repository.UserRepository, rdb redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *UserRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &UserRepository{Next: next, Redis: rdb, TTL: ttl, Logger: logger}
}

// cachedUser is the redis representation; the entity keeps its fields private.
type cachedUser struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func userKey(id uuid.UUID) string {
	return "user:id:" + id.String()
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var cu cachedUser
	hit, err := helpers.RedisGetJSON(ctx, r.Redis, userKey(id), &cu)
	if err != nil {
		r.warn(err, id, "user cache read failed")
	}
	if hit {
		return entity.Reconstitute(cu.ID, cu.Email, cu.PasswordHash, cu.IsActive, cu.CreatedAt, cu.UpdatedAt), nil
	}

	u, err := r.Next.FindByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	return r.Next.FindByEmail(ctx, email)
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	saved, err := r.Next.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	r.store(ctx, saved)
	return saved, nil
}

// Delete evicts after the store delete succeeds. Evicting first would let a
// racing FindByID re-cache the row for a full TTL.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := r.Next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if err := helpers.RedisDel(ctx, r.Redis, userKey(id)); err != nil {
		r.warn(err, id, "user cache eviction failed")
	}
	return deleted, nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	return r.Next.List(ctx, offset, limit)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return r.Next.Count(ctx)
}

func (r *UserRepository) store(ctx context.Context, u *entity.User) {
	cu := cachedUser{
		ID:           u.ID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
	if err := helpers.RedisSetJSON(ctx, r.Redis, userKey(u.ID()), cu, r.TTL); err != nil {
		r.warn(err, u.ID(), "user cache write failed")
	}
}

func (r *UserRepository) warn(err error, id uuid.UUID, msg string) {
	if r.Logger != nil {
		r.Logger.WithError(err).WithField("user_id", id.String()).Warn(msg)
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
