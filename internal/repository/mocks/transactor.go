package mocks

import (
	"context"

	"blog-account/internal/repository"
)

// Transactor 把 fn 直接交给内部的 UserRepository 执行，记录提交/回滚次数。
// 它不是 testify Mock：事务本身没有需要断言的参数。
type Transactor struct {
	Users     repository.UserRepository
	Commits   int
	Rollbacks int
}

var _ repository.Transactor = (*Transactor)(nil)

func (t *Transactor) WithinTx(ctx context.Context, fn func(users repository.UserRepository) error) error {
	if err := fn(t.Users); err != nil {
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}
