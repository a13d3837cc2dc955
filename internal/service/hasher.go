package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher 抽象了密码哈希算法。
type PasswordHasher interface {
	// Hash 生成带盐的单向哈希。
	Hash(plain string) (string, error)
	// Verify 校验明文与哈希是否匹配。
	Verify(hash, plain string) bool
}

// BcryptHasher 使用 bcrypt 实现 PasswordHasher。
type BcryptHasher struct {
	Cost int // 为 0 时使用 bcrypt.DefaultCost
}

// NewBcryptHasher 创建 BcryptHasher，cost 超出 bcrypt 允许范围时回退到默认值。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

func (h *BcryptHasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
