// Package application contains the use cases of the user service. Use cases
// validate input through value objects, talk to the repository port and shape
// responses. They neither log nor retry: every failure goes back to the caller.
package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/go-hexagonal-users/internal/domain"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	repo "github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

type CreateUser struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
}

func NewCreateUser(repo repo.UserRepository, hasher PasswordHasher) *CreateUser {
	return &CreateUser{Repo: repo, Hasher: hasher}
}

// Execute registers a new user. Input is validated before the repository is
// touched, and a taken email stops the flow before hashing.
func (uc *CreateUser) Execute(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	email, err := valueobject.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	password, err := valueobject.NewPassword(req.Password)
	if err != nil {
		return nil, err
	}

	existing, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, userAlreadyExists(email.String())
	}

	hash, err := uc.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.Save(ctx, entity.NewUser(uuid.New(), email.String(), hash))
	if err != nil {
		// a concurrent registration can slip past the lookup above; the
		// store's unique constraint is the final arbiter
		if errors.Is(err, domain.ErrDuplicateEntity) {
			return nil, userAlreadyExists(email.String())
		}
		return nil, err
	}

	resp := toUserResponse(saved)
	return &resp, nil
}
