package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
)

type CreateUserRequest struct {
	Email    string
	Password string
}

// UserResponse is the public view of a user shared by every use case.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type ListUsersRequest struct {
	Offset int
	Limit  int
}

type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}
