package repository

import (
	"context"

	"blog-account/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
// 所有查找方法在记录不存在时都应返回 ErrUserNotFound。
type UserRepository interface {
	// FindByID 根据用户 ID 查找用户。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByEmail 根据邮箱查找用户，用于注册时的唯一性校验和登录。
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByNickname 根据昵称查找用户，用于唯一性校验。
	FindByNickname(ctx context.Context, nickname string) (*domain.User, error)

	// FindAll 返回全部用户 (按 ID 升序)。
	FindAll(ctx context.Context) ([]domain.User, error)

	// Save 保存用户信息。
	// ID 为零值时创建新用户并回填 ID 和时间戳，否则更新已有记录。
	// 违反唯一约束时返回 ErrDuplicateEntry。
	Save(ctx context.Context, user *domain.User) error

	// Delete 删除给定的用户记录，记录已不存在时返回 ErrUserNotFound。
	Delete(ctx context.Context, user *domain.User) error

	// DeleteByID 按 ID 删除，记录不存在时静默成功。
	// UserService 不使用它：删除前总是先确认用户存在。
	DeleteByID(ctx context.Context, id uint) error
}

// Transactor 提供显式的事务边界。
// fn 返回错误 (或 panic) 时事务回滚，否则提交。
// fn 收到的 UserRepository 绑定在该事务上。
type Transactor interface {
	WithinTx(ctx context.Context, fn func(users UserRepository) error) error
}
