// Package dto 定义 HTTP 层的请求和响应结构，以及从领域对象到响应的转换。
package dto

import (
	"time"

	"blog-account/internal/domain"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// CreateUserRequest 注册请求 (multipart 表单，头像文件单独读取)
type CreateUserRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=191"`
	Nickname string `json:"nickname" form:"nickname" binding:"required,min=2,max=30"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=72"` // bcrypt 只使用前 72 字节
}

// UpdateUserRequest 资料更新请求，未提交的字段保持不变
type UpdateUserRequest struct {
	Nickname *string `json:"nickname" form:"nickname" binding:"omitempty,min=2,max=30"`
}

// LoginResponse 登录成功的响应
type LoginResponse struct {
	UserID   uint   `json:"id"`
	Nickname string `json:"nickname"`
	Token    string `json:"token"`
}

// UserResponse 用户资料响应，不包含密码哈希
type UserResponse struct {
	UserID    uint      `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToLoginResponse(user *domain.User, token string) LoginResponse {
	return LoginResponse{UserID: user.ID, Nickname: user.Nickname, Token: token}
}

func ToUserResponse(user *domain.User) UserResponse {
	roles := append([]string{}, user.Roles...)
	return UserResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		AvatarURL: user.AvatarURL,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses 保持输入顺序
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}
