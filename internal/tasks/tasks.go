// Package tasks 定义后台任务的类型和载荷，以及投递任务的客户端。
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// 定义任务类型常量
const (
	TypeAvatarRemoval = "avatar:remove" // 删除不再被引用的头像
)

// QueueLow 清理类任务使用的低优先级队列
const QueueLow = "low"

// AvatarRemovalPayload 定义了头像清理任务的数据结构
type AvatarRemovalPayload struct {
	URL         string    `json:"url"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// NewAvatarRemovalTask 创建一个头像清理任务
func NewAvatarRemovalTask(url string, now time.Time) (*asynq.Task, error) {
	if url == "" {
		return nil, errors.New("avatar url cannot be empty")
	}
	payloadBytes, err := json.Marshal(AvatarRemovalPayload{URL: url, ScheduledAt: now})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal avatar removal payload: %w", err)
	}
	return asynq.NewTask(TypeAvatarRemoval, payloadBytes,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}

// ParseAvatarRemovalPayload 解析任务载荷
func ParseAvatarRemovalPayload(t *asynq.Task) (AvatarRemovalPayload, error) {
	var payload AvatarRemovalPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return payload, err
	}
	if payload.URL == "" {
		return payload, errors.New("avatar removal payload has empty url")
	}
	return payload, nil
}
