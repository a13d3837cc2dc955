package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"blog-account/internal/service"
	"blog-account/internal/tasks"
)

// AvatarRemovalHandler 处理头像清理任务
type AvatarRemovalHandler struct {
	avatars service.AvatarStore
}

// NewAvatarRemovalHandler 创建 Handler 实例
func NewAvatarRemovalHandler(avatars service.AvatarStore) *AvatarRemovalHandler {
	if avatars == nil {
		panic("AvatarStore cannot be nil for AvatarRemovalHandler")
	}
	return &AvatarRemovalHandler{avatars: avatars}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *AvatarRemovalHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	taskID := ""
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	currentRetry, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	logCtx := logrus.WithFields(logrus.Fields{
		"component": "worker",
		"task_id":   taskID,
		"task_type": t.Type(),
		"retry":     currentRetry,
		"max_retry": maxRetry,
	})

	payload, err := tasks.ParseAvatarRemovalPayload(t)
	if err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		// 载荷损坏，重试没有意义
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx = logCtx.WithField("avatar_url", payload.URL)

	if err := h.avatars.Remove(ctx, payload.URL); err != nil {
		logCtx.WithError(err).Warn("Failed to remove avatar, will retry")
		return fmt.Errorf("failed to remove avatar %s: %w", payload.URL, err)
	}

	logCtx.Info("Avatar removal task processed successfully")
	return nil
}
