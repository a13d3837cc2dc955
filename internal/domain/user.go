// Package domain 定义了账户服务的核心数据结构 (同时作为数据库模型)。
package domain

import (
	"io"
	"time"
)

// 角色常量 (由 RoleAssigner 在注册时分配)
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User 表示博客平台中的一个用户账户。
type User struct {
	ID        uint      `gorm:"primaryKey"`                                          // 用户唯一标识符 (主键, 创建后不可变)
	Email     string    `gorm:"type:varchar(191);uniqueIndex:idx_email;not null"`    // 邮箱, 全局唯一, 创建后不可修改
	Nickname  string    `gorm:"type:varchar(191);uniqueIndex:idx_nickname;not null"` // 昵称, 全局唯一, 可修改
	Password  string    `gorm:"type:varchar(255);not null"`                          // bcrypt 哈希, 从不存储明文
	Roles     []string  `gorm:"type:text;serializer:json"`                           // 注册时分配, 之后不再修改
	AvatarURL string    `gorm:"type:varchar(512)"`                                   // 头像地址, 可选
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 固定表名，避免 GORM 复数化规则变化带来的影响。
func (User) TableName() string {
	return "users"
}

// HasRole 判断用户是否拥有指定角色。
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Registration 是注册请求的候选数据 (按值传递, 不会被服务层修改)。
type Registration struct {
	Email    string
	Nickname string
	Password string // 明文密码, 只在哈希前存在
}

// ProfilePatch 描述一次部分更新。
// 只有非 nil 的字段会覆盖已存储的值 (merge-if-present)。
type ProfilePatch struct {
	ID        uint
	Nickname  *string
	AvatarURL *string
}

// AvatarFile 是上传头像时携带的文件内容。
type AvatarFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ApplyPatch 返回合并了 patch 的新 User 值，接收者本身不会被修改。
// ID、Email、Password、Roles 无论 patch 中是什么都保持不变。
func (u User) ApplyPatch(patch ProfilePatch) User {
	merged := u
	merged.Roles = append([]string(nil), u.Roles...)
	if patch.Nickname != nil {
		merged.Nickname = *patch.Nickname
	}
	if patch.AvatarURL != nil {
		merged.AvatarURL = *patch.AvatarURL
	}
	return merged
}

// Sanitized 返回去除了密码哈希的副本，用于向上层返回。
func (u User) Sanitized() *User {
	c := u
	c.Password = ""
	c.Roles = append([]string(nil), u.Roles...)
	return &c
}
