package service

import (
	"strings"

	"blog-account/internal/domain"
)

// RoleAssigner 在注册时根据邮箱计算用户角色。
type RoleAssigner interface {
	CreateRoles(email string) []string
}

// EmailRoleAssigner 根据管理员邮箱白名单分配角色：
// 白名单内的邮箱得到 ADMIN + USER，其余只有 USER。
type EmailRoleAssigner struct {
	admins map[string]struct{}
}

// NewEmailRoleAssigner 创建 EmailRoleAssigner，邮箱比较忽略大小写和首尾空白。
func NewEmailRoleAssigner(adminEmails []string) *EmailRoleAssigner {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &EmailRoleAssigner{admins: admins}
}

func (a *EmailRoleAssigner) CreateRoles(email string) []string {
	if _, ok := a.admins[normalizeEmail(email)]; ok {
		return []string{domain.RoleAdmin, domain.RoleUser}
	}
	return []string{domain.RoleUser}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
