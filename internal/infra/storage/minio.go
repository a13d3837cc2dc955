package storage

import (
	"context"
	"fmt"
	"time"

	"blog-account/internal/domain"
	"blog-account/internal/service"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// MinioConfig 描述 MinIO/S3 连接参数
type MinioConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string // 为空时使用 endpoint/bucket 作为访问前缀
}

// MinioStore 把头像上传到 MinIO 存储桶。
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	cb      *gobreaker.CircuitBreaker
}

var _ service.AvatarStore = (*MinioStore)(nil)

// NewMinioStore 创建 MinioStore 并确保存储桶存在。
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET must be set")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio: create bucket %s: %w", cfg.Bucket, err)
		}
		logrus.WithField("bucket", cfg.Bucket).Info("MinIO bucket created")
	}

	return &MinioStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		cb:      newStorageBreaker("MinioAvatarStore"),
	}, nil
}

func publicBaseURL(cfg MinioConfig) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

func newStorageBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logrus.WithField("breaker", name).Warnf("CircuitBreaker state changed from %s to %s", from, to)
		},
	})
}

func (s *MinioStore) Upload(ctx context.Context, file *domain.AvatarFile, owner *domain.User) (string, error) {
	if err := validateAvatar(file); err != nil {
		return "", err
	}
	key := objectKey(file, owner)

	_, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.PutObject(ctx, s.bucket, key, file.Body, file.Size, minio.PutObjectOptions{
			ContentType: normalizeContentType(file.ContentType),
		})
	})
	if err != nil {
		return "", fmt.Errorf("minio: put object %s: %w", key, err)
	}

	logrus.WithFields(logrus.Fields{"bucket": s.bucket, "key": key}).Debug("Avatar uploaded")
	return joinURL(s.baseURL, key), nil
}

// Remove 删除 URL 对应的对象。URL 不属于本存储桶时直接返回 nil。
func (s *MinioStore) Remove(ctx context.Context, url string) error {
	key, ok := keyFromURL(s.baseURL, url)
	if !ok {
		logrus.WithField("avatar_url", url).Warn("Skip removing avatar outside bucket")
		return nil
	}
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return fmt.Errorf("minio: remove object %s: %w", key, err)
	}
	return nil
}
