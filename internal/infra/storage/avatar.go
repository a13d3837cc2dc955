// Package storage 提供头像文件的存储实现 (MinIO 对象存储和本地磁盘)。
package storage

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"blog-account/internal/domain"
	"blog-account/internal/service"

	"github.com/google/uuid"
)

// MaxAvatarSize 单个头像文件的大小上限 (5 MiB)
const MaxAvatarSize = 5 << 20

const avatarPrefix = "avatars"

// 允许的头像类型及其扩展名
var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// validateAvatar 校验上传文件，失败时返回包装了 service.ErrInvalidAvatar 的错误。
func validateAvatar(file *domain.AvatarFile) error {
	if file == nil || file.Body == nil {
		return fmt.Errorf("%w: empty file", service.ErrInvalidAvatar)
	}
	if file.Size <= 0 || file.Size > MaxAvatarSize {
		return fmt.Errorf("%w: size %d out of range", service.ErrInvalidAvatar, file.Size)
	}
	if _, ok := avatarExtensions[normalizeContentType(file.ContentType)]; !ok {
		return fmt.Errorf("%w: unsupported content type %q", service.ErrInvalidAvatar, file.ContentType)
	}
	return nil
}

func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// objectKey 生成对象键：已有用户放在 avatars/<userID>/ 下，注册时放在 avatars/ 下。
// 文件名使用 uuid，新头像不会覆盖旧对象。
func objectKey(file *domain.AvatarFile, owner *domain.User) string {
	name := uuid.NewString() + avatarExtensions[normalizeContentType(file.ContentType)]
	if owner != nil && owner.ID != 0 {
		return path.Join(avatarPrefix, strconv.FormatUint(uint64(owner.ID), 10), name)
	}
	return path.Join(avatarPrefix, name)
}

// keyFromURL 从公开 URL 中取回对象键，URL 不属于 baseURL 时返回 false。
func keyFromURL(baseURL, url string) (string, bool) {
	prefix := strings.TrimRight(baseURL, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := path.Clean(strings.TrimPrefix(url, prefix))
	// 只允许删除头像前缀下的对象
	if !strings.HasPrefix(key, avatarPrefix+"/") {
		return "", false
	}
	return key, true
}

func joinURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + key
}
