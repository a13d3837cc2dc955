package http

import (
	"context"
	"net/http"

	"blog-account/internal/domain"
	"blog-account/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Authenticator 由 service.AuthService 实现
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// AuthHandler 封装了与用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService Authenticator
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	// 1. 绑定并验证输入
	if err := c.ShouldBind(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: email and password required")
		return
	}

	// 2. 调用 Service 层处理登录逻辑
	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 3. 登录成功响应
	logrus.WithField("user_id", user.ID).Info("Handler.Login: User logged in successfully")
	SuccessResponse(c, http.StatusOK, dto.ToLoginResponse(user, token))
}
