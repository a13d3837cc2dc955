package tasks

import (
	"context"
	"fmt"
	"time"

	"blog-account/internal/service"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Enqueuer 是 asynq.Client 中投递任务的部分
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AvatarJanitor 把头像清理投递到 asynq 队列，由 worker 异步执行删除。
type AvatarJanitor struct {
	client Enqueuer
	delay  time.Duration
}

var _ service.AvatarJanitor = (*AvatarJanitor)(nil)

// NewAvatarJanitor 创建 AvatarJanitor。
// delay 为任务延迟执行的时间，给仍持有旧 URL 的客户端 (例如 CDN 缓存) 留出余量。
func NewAvatarJanitor(client Enqueuer, delay time.Duration) *AvatarJanitor {
	if client == nil {
		panic("asynq client cannot be nil for AvatarJanitor")
	}
	return &AvatarJanitor{client: client, delay: delay}
}

func (j *AvatarJanitor) ScheduleRemoval(ctx context.Context, url string) error {
	task, err := NewAvatarRemovalTask(url, time.Now())
	if err != nil {
		return err
	}
	var opts []asynq.Option
	if j.delay > 0 {
		opts = append(opts, asynq.ProcessIn(j.delay))
	}
	info, err := j.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue avatar removal: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"task_id":    info.ID,
		"queue":      info.Queue,
		"avatar_url": url,
	}).Debug("Avatar removal task enqueued")
	return nil
}
