package service

import "errors"

// 业务错误，Handler 层据此决定 HTTP 状态码
var (
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicateNickname    = errors.New("nickname already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbidden            = errors.New("operation not permitted")
	ErrInvalidAvatar        = errors.New("invalid avatar file")
)
