package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"blog-account/internal/domain"
	"blog-account/internal/dto"
	"blog-account/internal/middleware"
	"blog-account/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserService 是 UserHandler 依赖的 service.UserService 方法集
type UserService interface {
	CreateUser(ctx context.Context, reg domain.Registration, file *domain.AvatarFile) (*domain.User, error)
	UpdateUser(ctx context.Context, patch domain.ProfilePatch, file *domain.AvatarFile) (*domain.User, error)
	FindUser(ctx context.Context, id uint) (*domain.User, error)
	FindAllUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// UserHandler 封装了用户账户相关的 HTTP 处理逻辑
type UserHandler struct {
	userService UserService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create 处理注册请求 (multipart: email, nickname, password, 可选 file)
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateUser: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	file, closeFile, err := avatarFromRequest(c)
	if err != nil {
		logrus.WithError(err).Warn("Handler.CreateUser: Invalid avatar upload")
		ErrorResponse(c, http.StatusBadRequest, "Invalid avatar upload")
		return
	}
	defer closeFile()

	reg := domain.Registration{Email: req.Email, Nickname: req.Nickname, Password: req.Password}
	user, err := h.userService.CreateUser(c.Request.Context(), reg, file)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, dto.ToUserResponse(user))
}

// List 返回全部用户
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.FindAllUsers(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.ToUserResponses(users))
}

// Get 返回单个用户
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.FindUser(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.ToUserResponse(user))
}

// Update 更新昵称和头像，只允许本人或管理员操作
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	if err := authorizeSelfOrAdmin(c, id); err != nil {
		HandleServiceError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateUser: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	file, closeFile, err := avatarFromRequest(c)
	if err != nil {
		logrus.WithError(err).Warn("Handler.UpdateUser: Invalid avatar upload")
		ErrorResponse(c, http.StatusBadRequest, "Invalid avatar upload")
		return
	}
	defer closeFile()

	user, err := h.userService.UpdateUser(c.Request.Context(), domain.ProfilePatch{ID: id, Nickname: req.Nickname}, file)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.ToUserResponse(user))
}

// Delete 删除用户，只允许本人或管理员操作
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	if err := authorizeSelfOrAdmin(c, id); err != nil {
		HandleServiceError(c, err)
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	return uint(id), true
}

func authorizeSelfOrAdmin(c *gin.Context, target uint) error {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return service.ErrAuthenticationFailed
	}
	if callerID != target && !middleware.IsAdmin(c) {
		logrus.WithFields(logrus.Fields{"user_id": callerID, "target_id": target}).Warn("Handler: Forbidden profile access")
		return service.ErrForbidden
	}
	return nil
}

// avatarFromRequest 读取可选的 "file" 字段。没有上传文件时返回 nil。
func avatarFromRequest(c *gin.Context) (*domain.AvatarFile, func(), error) {
	noop := func() {}
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open uploaded file: %w", err)
	}
	return &domain.AvatarFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
