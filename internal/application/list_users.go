package application

import (
	"context"

	repo "github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
)

type ListUsers struct {
	Repo repo.UserRepository
}

func NewListUsers(repo repo.UserRepository) *ListUsers {
	return &ListUsers{Repo: repo}
}

// Execute returns one page plus the overall total. The two reads are not
// atomic, so Total may disagree with the page under concurrent writes.
// Bounds on Offset and Limit are the caller's job.
func (uc *ListUsers) Execute(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error) {
	users, err := uc.Repo.List(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}
	total, err := uc.Repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return &ListUsersResponse{Users: out, Total: total, Offset: req.Offset, Limit: req.Limit}, nil
}
