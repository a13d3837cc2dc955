package gormpersistence

import (
	"context"

	"gorm.io/gorm"

	"blog-account/internal/repository"
)

// GormTransactor 用 GORM 事务实现 repository.Transactor。
type GormTransactor struct {
	db *gorm.DB
}

var _ repository.Transactor = (*GormTransactor)(nil)

// NewGormTransactor 创建 GormTransactor 实例
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	if db == nil {
		panic("database connection cannot be nil for GormTransactor")
	}
	return &GormTransactor{db: db}
}

// WithinTx 在一个事务中执行 fn。fn 返回错误或 panic 时 GORM 会回滚。
func (t *GormTransactor) WithinTx(ctx context.Context, fn func(users repository.UserRepository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormUserRepository(tx))
	})
}
