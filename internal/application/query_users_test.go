package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/internal/domain"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	mockrepository "github.com/oksasatya/go-hexagonal-users/internal/domain/repository/mock"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/service"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/memory"
)

func TestGetUser_Found(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockrepository.NewMockUserRepository(ctrl)
	uc := application.NewGetUser(repo)

	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	u := entity.Reconstitute(uuid.New(), "test@example.com", "hash", false, created, nil)
	repo.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil)

	res, err := uc.Execute(context.Background(), u.ID())
	require.NoError(t, err)
	assert.Equal(t, u.ID(), res.ID)
	assert.Equal(t, "test@example.com", res.Email)
	assert.Equal(t, created, res.CreatedAt)
	assert.False(t, res.IsActive)
}

func TestGetUser_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockrepository.NewMockUserRepository(ctrl)
	uc := application.NewGetUser(repo)

	id := uuid.New()
	repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

	res, err := uc.Execute(context.Background(), id)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, application.ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	assert.Contains(t, err.Error(), id.String())
}

func TestGetUser_RepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockrepository.NewMockUserRepository(ctrl)
	uc := application.NewGetUser(repo)

	boom := errors.New("timeout")
	repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := uc.Execute(context.Background(), uuid.New())
	assert.Same(t, boom, err)
	assert.NotErrorIs(t, err, application.ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockrepository.NewMockUserRepository(ctrl)
	uc := application.NewListUsers(repo)

	users := []*entity.User{
		entity.NewUser(uuid.New(), "a@example.com", "h"),
		entity.NewUser(uuid.New(), "b@example.com", "h"),
	}
	gomock.InOrder(
		repo.EXPECT().List(gomock.Any(), 5, 2).Return(users, nil),
		repo.EXPECT().Count(gomock.Any()).Return(9, nil),
	)

	res, err := uc.Execute(context.Background(), application.ListUsersRequest{Offset: 5, Limit: 2})
	require.NoError(t, err)
	require.Len(t, res.Users, 2)
	assert.Equal(t, "a@example.com", res.Users[0].Email)
	assert.Equal(t, 9, res.Total)
	assert.Equal(t, 5, res.Offset)
	assert.Equal(t, 2, res.Limit)
}

func TestListUsers_EmptyPageIsNotNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockrepository.NewMockUserRepository(ctrl)
	uc := application.NewListUsers(repo)

	repo.EXPECT().List(gomock.Any(), 0, 10).Return(nil, nil)
	repo.EXPECT().Count(gomock.Any()).Return(0, nil)

	res, err := uc.Execute(context.Background(), application.ListUsersRequest{Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, res.Users)
	assert.Empty(t, res.Users)
}

func TestListUsers_CountFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockrepository.NewMockUserRepository(ctrl)
	uc := application.NewListUsers(repo)

	boom := errors.New("count failed")
	repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	repo.EXPECT().Count(gomock.Any()).Return(0, boom)

	_, err := uc.Execute(context.Background(), application.ListUsersRequest{Limit: 10})
	assert.Same(t, boom, err)
}

func TestListUsers_AfterTwoRegistrations(t *testing.T) {
	repo := memory.NewUserRepository()
	create := application.NewCreateUser(repo, service.NewPasswordService(4))
	ctx := context.Background()

	for _, email := range []string{"one@example.com", "two@example.com"} {
		_, err := create.Execute(ctx, application.CreateUserRequest{Email: email, Password: validPassword})
		require.NoError(t, err)
	}

	res, err := application.NewListUsers(repo).Execute(ctx, application.ListUsersRequest{Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(res.Users), 2)
	assert.GreaterOrEqual(t, res.Total, 2)
}
