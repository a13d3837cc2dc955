package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"blog-account/internal/domain"
	"blog-account/internal/service"

	"github.com/sirupsen/logrus"
)

// LocalStore 把头像保存在本地目录，适用于开发环境和测试。
// 目录需要由 HTTP 层以 baseURL 对外提供静态访问。
type LocalStore struct {
	dir     string
	baseURL string
}

var _ service.AvatarStore = (*LocalStore)(nil)

// NewLocalStore 创建 LocalStore，目录不存在时自动创建。
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if dir == "" || baseURL == "" {
		return nil, fmt.Errorf("local storage dir and base url must be set")
	}
	if err := os.MkdirAll(filepath.Join(dir, avatarPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("local: create storage dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Dir 返回存储根目录
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Upload(ctx context.Context, file *domain.AvatarFile, owner *domain.User) (string, error) {
	if err := validateAvatar(file); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := objectKey(file, owner)
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("local: create avatar dir: %w", err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("local: create avatar file: %w", err)
	}
	// 多读一个字节用于检测声明大小与实际内容不符
	n, copyErr := io.Copy(f, io.LimitReader(file.Body, MaxAvatarSize+1))
	closeErr := f.Close()
	if copyErr == nil && n > MaxAvatarSize {
		copyErr = fmt.Errorf("%w: file exceeds %d bytes", service.ErrInvalidAvatar, MaxAvatarSize)
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(target)
		if copyErr != nil {
			return "", fmt.Errorf("local: write avatar: %w", copyErr)
		}
		return "", fmt.Errorf("local: close avatar: %w", closeErr)
	}

	url := joinURL(s.baseURL, key)
	logrus.WithFields(logrus.Fields{"key": key, "bytes": n}).Debug("Avatar stored on local disk")
	return url, nil
}

// Remove 删除 URL 对应的文件。URL 不属于本存储或文件不存在时直接返回 nil。
func (s *LocalStore) Remove(ctx context.Context, url string) error {
	key, ok := keyFromURL(s.baseURL, url)
	if !ok {
		logrus.WithField("avatar_url", url).Warn("Skip removing avatar outside local storage")
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("local: remove avatar: %w", err)
	}
	return nil
}
