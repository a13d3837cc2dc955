// Package mocks 提供 service 协作者接口的 testify Mock 实现。
package mocks

import (
	"context"

	"blog-account/internal/domain"
	"blog-account/internal/service"

	"github.com/stretchr/testify/mock"
)

var (
	_ service.PasswordHasher = (*PasswordHasher)(nil)
	_ service.RoleAssigner   = (*RoleAssigner)(nil)
	_ service.AvatarStore    = (*AvatarStore)(nil)
	_ service.AvatarJanitor  = (*AvatarJanitor)(nil)
)

// PasswordHasher 是 service.PasswordHasher 的 Mock。
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(hash, plain string) bool {
	args := m.Called(hash, plain)
	return args.Bool(0)
}

// RoleAssigner 是 service.RoleAssigner 的 Mock。
type RoleAssigner struct {
	mock.Mock
}

func (m *RoleAssigner) CreateRoles(email string) []string {
	args := m.Called(email)
	if v := args.Get(0); v != nil {
		return v.([]string)
	}
	return nil
}

// AvatarStore 是 service.AvatarStore 的 Mock。
type AvatarStore struct {
	mock.Mock
}

func (m *AvatarStore) Upload(ctx context.Context, file *domain.AvatarFile, owner *domain.User) (string, error) {
	args := m.Called(ctx, file, owner)
	return args.String(0), args.Error(1)
}

func (m *AvatarStore) Remove(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// AvatarJanitor 是 service.AvatarJanitor 的 Mock。
type AvatarJanitor struct {
	mock.Mock
}

func (m *AvatarJanitor) ScheduleRemoval(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
