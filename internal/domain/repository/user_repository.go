package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

// UserRepository defines the persistence contract for users.
//
// Lookups return (nil, nil) when nothing matches; an error always means the
// store failed. Save reports an email uniqueness conflict with an error that
// matches domain.ErrDuplicateEntity.
//
//go:generate mockgen -package mockrepository -source=user_repository.go -destination=mock/mockrepository.go
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error)
	// Save inserts or updates u and returns the stored state.
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
}
