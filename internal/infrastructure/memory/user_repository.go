// Package memory implements the user repository on a guarded map. It backs
// STORAGE_DRIVER=memory and the HTTP tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-hexagonal-users/internal/domain"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

type UserRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return clone(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email valueobject.Email) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email.String()]
	if !ok {
		return nil, nil
	}
	return clone(r.users[id]), nil
}

func (r *UserRepository) Save(_ context.Context, u *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byEmail[u.Email()]; ok && owner != u.ID() {
		return nil, fmt.Errorf("%w: email %s", domain.ErrDuplicateEntity, u.Email())
	}
	if prev, ok := r.users[u.ID()]; ok && prev.Email() != u.Email() {
		delete(r.byEmail, prev.Email())
	}

	stored := clone(u)
	r.users[u.ID()] = stored
	r.byEmail[u.Email()] = u.ID()
	return clone(stored), nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	delete(r.byEmail, u.Email())
	delete(r.users, id)
	return true, nil
}

// List orders by creation time, then id, like the postgres adapter.
func (r *UserRepository) List(_ context.Context, offset, limit int) ([]*entity.User, error) {
	r.mu.RLock()
	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt().Equal(all[j].CreatedAt()) {
			return all[i].CreatedAt().Before(all[j].CreatedAt())
		}
		return all[i].ID().String() < all[j].ID().String()
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) || limit <= 0 {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	out := make([]*entity.User, 0, end-offset)
	for _, u := range all[offset:end] {
		out = append(out, clone(u))
	}
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// clone keeps callers from mutating stored state behind the lock.
func clone(u *entity.User) *entity.User {
	var updated *time.Time
	if t := u.UpdatedAt(); t != nil {
		v := *t
		updated = &v
	}
	return entity.Reconstitute(u.ID(), u.Email(), u.PasswordHash(), u.IsActive(), u.CreatedAt(), updated)
}

var _ repository.UserRepository = (*UserRepository)(nil)
