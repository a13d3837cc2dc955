package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"blog-account/internal/domain"
	"blog-account/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// UserDeps 汇总 UserService 的依赖。Cache 和 Janitor 可以为 nil。
type UserDeps struct {
	Tx      repository.Transactor     // 写操作的事务边界
	Users   repository.UserRepository // 非事务读操作使用
	Cache   repository.UserCache
	Hasher  PasswordHasher
	Roles   RoleAssigner
	Avatars AvatarStore
	Janitor AvatarJanitor
}

// UserService 负责用户注册、资料更新、查询和删除的业务逻辑。
type UserService struct {
	tx      repository.Transactor
	users   repository.UserRepository
	cache   repository.UserCache
	hasher  PasswordHasher
	roles   RoleAssigner
	avatars AvatarStore
	janitor AvatarJanitor
	loads   singleflight.Group // 缓存未命中时合并同一用户的并发回源
}

// NewUserService 创建 UserService 实例，缺少必需依赖时 panic。
func NewUserService(deps UserDeps) *UserService {
	if deps.Tx == nil || deps.Users == nil {
		panic("Transactor and UserRepository cannot be nil for UserService")
	}
	if deps.Hasher == nil || deps.Roles == nil || deps.Avatars == nil {
		panic("PasswordHasher, RoleAssigner and AvatarStore cannot be nil for UserService")
	}
	return &UserService{
		tx:      deps.Tx,
		users:   deps.Users,
		cache:   deps.Cache,
		hasher:  deps.Hasher,
		roles:   deps.Roles,
		avatars: deps.Avatars,
		janitor: deps.Janitor,
	}
}

// CreateUser 注册新用户。
// 顺序：邮箱唯一 -> 昵称唯一 -> 哈希密码 -> 分配角色 -> 上传头像 -> 一次 Save。
// 所有校验都在任何副作用之前完成，整个过程在一个事务内。
func (s *UserService) CreateUser(ctx context.Context, reg domain.Registration, file *domain.AvatarFile) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"email": reg.Email, "nickname": reg.Nickname})

	var created *domain.User
	var uploadedURL string

	err := s.tx.WithinTx(ctx, func(users repository.UserRepository) error {
		// 1. 邮箱唯一性 (必须先于昵称检查)
		if err := verifyEmailAvailable(ctx, users, reg.Email); err != nil {
			return err
		}
		// 2. 昵称唯一性
		if err := verifyNicknameAvailable(ctx, users, reg.Nickname, 0); err != nil {
			return err
		}

		// 3. 哈希密码，明文不进入记录
		hash, err := s.hasher.Hash(reg.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		// 4. 分配角色
		roles := s.roles.CreateRoles(reg.Email)
		if len(roles) == 0 {
			roles = []string{domain.RoleUser}
		}

		user := &domain.User{
			Email:    reg.Email,
			Nickname: reg.Nickname,
			Password: hash,
			Roles:    roles,
		}

		// 5. 上传头像 (可选)
		if file != nil {
			url, err := s.avatars.Upload(ctx, file, nil)
			if err != nil {
				return err
			}
			uploadedURL = url
			user.AvatarURL = url
		}

		// 6. 落库，错误原样返回
		if err := users.Save(ctx, user); err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		// 事务已回滚，已上传的头像不再被任何记录引用
		if uploadedURL != "" {
			s.scheduleAvatarRemoval(ctx, uploadedURL, logCtx)
		}
		logServiceError(logCtx, err, "Registration failed")
		return nil, err
	}

	logCtx.WithField("user_id", created.ID).Info("User registered successfully")
	return created.Sanitized(), nil
}

// UpdateUser 按 merge-if-present 规则更新昵称和头像。
// 用户不存在时返回 ErrUserNotFound；邮箱、密码、角色永远不会被修改。
func (s *UserService) UpdateUser(ctx context.Context, patch domain.ProfilePatch, file *domain.AvatarFile) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", patch.ID)

	var updated *domain.User
	var previousAvatar, uploadedURL string

	err := s.tx.WithinTx(ctx, func(users repository.UserRepository) error {
		existing, err := users.FindByID(ctx, patch.ID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if patch.Nickname != nil && *patch.Nickname != existing.Nickname {
			if err := verifyNicknameAvailable(ctx, users, *patch.Nickname, existing.ID); err != nil {
				return err
			}
		}

		if file != nil {
			url, err := s.avatars.Upload(ctx, file, existing)
			if err != nil {
				return err
			}
			uploadedURL = url
			patch.AvatarURL = &url
		}

		merged := existing.ApplyPatch(patch)
		if err := users.Save(ctx, &merged); err != nil {
			return err
		}
		previousAvatar = existing.AvatarURL
		updated = &merged
		return nil
	})
	if err != nil {
		if uploadedURL != "" {
			s.scheduleAvatarRemoval(ctx, uploadedURL, logCtx)
		}
		logServiceError(logCtx, err, "Profile update failed")
		return nil, err
	}

	s.evict(ctx, updated.ID, logCtx)
	if previousAvatar != "" && previousAvatar != updated.AvatarURL {
		s.scheduleAvatarRemoval(ctx, previousAvatar, logCtx)
	}

	logCtx.Info("User profile updated successfully")
	return updated.Sanitized(), nil
}

// FindUser 根据 ID 查找用户，优先读缓存。不存在时返回 ErrUserNotFound。
func (s *UserService) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", id)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			logCtx.WithError(err).Warn("FindUser: cache read failed, falling back to repository")
		}
	}

	v, err, _ := s.loads.Do(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out := user.Sanitized()
		if s.cache != nil {
			if err := s.cache.Set(ctx, out); err != nil {
				logCtx.WithError(err).Warn("FindUser: failed to populate cache")
			}
		}
		return out, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Debug("FindUser: user not found")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("FindUser: repository error")
		return nil, err
	}
	// 共享结果时每个调用方拿到独立副本
	return v.(*domain.User).Sanitized(), nil
}

// FindAllUsers 返回全部用户，不做过滤和分页。
func (s *UserService) FindAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("FindAllUsers: repository error")
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, *u.Sanitized())
	}
	return out, nil
}

// DeleteUser 删除用户。用户不存在时返回 ErrUserNotFound。
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("user_id", id)

	var avatar string
	err := s.tx.WithinTx(ctx, func(users repository.UserRepository) error {
		found, err := users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := users.Delete(ctx, found); err != nil {
			// 并发删除时记录可能已经不在了
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		avatar = found.AvatarURL
		return nil
	})
	if err != nil {
		logServiceError(logCtx, err, "User deletion failed")
		return err
	}

	s.evict(ctx, id, logCtx)
	if avatar != "" {
		s.scheduleAvatarRemoval(ctx, avatar, logCtx)
	}
	logCtx.Info("User deleted successfully")
	return nil
}

// --- 私有辅助函数 ---

func verifyEmailAvailable(ctx context.Context, users repository.UserRepository, email string) error {
	_, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrDuplicateEmail
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// verifyNicknameAvailable 检查昵称是否被其他用户占用，selfID 对应的用户不算冲突。
func verifyNicknameAvailable(ctx context.Context, users repository.UserRepository, nickname string, selfID uint) error {
	found, err := users.FindByNickname(ctx, nickname)
	switch {
	case err == nil:
		if selfID != 0 && found != nil && found.ID == selfID {
			return nil
		}
		return ErrDuplicateNickname
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

func (s *UserService) scheduleAvatarRemoval(ctx context.Context, url string, logCtx *logrus.Entry) {
	entry := logCtx.WithField("avatar_url", url)
	if s.janitor == nil {
		entry.Warn("No avatar janitor configured, avatar left in storage")
		return
	}
	if err := s.janitor.ScheduleRemoval(ctx, url); err != nil {
		entry.WithError(err).Error("Failed to schedule avatar removal")
	}
}

func (s *UserService) evict(ctx context.Context, id uint, logCtx *logrus.Entry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Evict(ctx, id); err != nil {
		logCtx.WithError(err).Warn("Failed to evict profile cache")
	}
}

// logServiceError 业务拒绝记为 Warn，其他错误记为 Error。
func logServiceError(logCtx *logrus.Entry, err error, msg string) {
	switch {
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrDuplicateNickname),
		errors.Is(err, ErrUserNotFound), errors.Is(err, repository.ErrDuplicateEntry):
		logCtx.WithError(err).Warn(msg)
	default:
		logCtx.WithError(err).Error(msg)
	}
}
