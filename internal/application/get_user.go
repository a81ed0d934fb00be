package application

import (
	"context"

	"github.com/google/uuid"

	repo "github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
)

type GetUser struct {
	Repo repo.UserRepository
}

func NewGetUser(repo repo.UserRepository) *GetUser {
	return &GetUser{Repo: repo}
}

func (uc *GetUser) Execute(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	u, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, userNotFound(id)
	}
	resp := toUserResponse(u)
	return &resp, nil
}
