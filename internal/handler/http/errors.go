package http

import (
	"errors"
	"net/http"

	"blog-account/internal/repository"
	"blog-account/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleServiceError 把 Service 层错误映射为 HTTP 状态码
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateNickname):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrDuplicateEntry):
		// 并发注册被唯一索引拦下
		ErrorResponse(c, http.StatusConflict, "email or nickname already exists")
	case errors.Is(err, service.ErrUserNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidAvatar):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		// Log the internal error for debugging
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
