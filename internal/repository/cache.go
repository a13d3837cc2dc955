package repository

import (
	"context"

	"blog-account/internal/domain"
)

// UserCache 是用户资料的读缓存，通常由 Redis 实现。
// 缓存中的条目不包含密码哈希。
type UserCache interface {
	// Get 读取缓存的用户资料，未命中时返回 ErrCacheMiss。
	Get(ctx context.Context, id uint) (*domain.User, error)

	// Set 写入缓存。
	Set(ctx context.Context, user *domain.User) error

	// Evict 删除缓存条目，条目不存在时不报错。
	Evict(ctx context.Context, id uint) error
}
