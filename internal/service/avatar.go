package service

import (
	"context"

	"blog-account/internal/domain"
)

// AvatarStore 负责头像文件的存储，返回可访问的稳定 URL。
type AvatarStore interface {
	// Upload 上传头像。owner 为已存在的用户时 (更新场景)，存储实现可以把对象放在该用户的前缀下。
	// 注册场景 owner 为 nil。
	Upload(ctx context.Context, file *domain.AvatarFile, owner *domain.User) (string, error)

	// Remove 删除 URL 对应的对象，对象不存在时不报错。
	Remove(ctx context.Context, url string) error
}

// AvatarJanitor 异步清理不再被引用的头像 (被替换、用户删除、或事务回滚后遗留的上传)。
type AvatarJanitor interface {
	ScheduleRemoval(ctx context.Context, url string) error
}
