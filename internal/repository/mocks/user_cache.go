package mocks

import (
	"context"

	"blog-account/internal/domain"
	"blog-account/internal/repository"

	"github.com/stretchr/testify/mock"
)

// UserCache 是 repository.UserCache 的 Mock。
type UserCache struct {
	mock.Mock
}

var _ repository.UserCache = (*UserCache)(nil)

func (m *UserCache) Get(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userArg(args, 0), args.Error(1)
}

func (m *UserCache) Set(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserCache) Evict(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
