package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"blog-account/internal/domain"
	"blog-account/internal/repository"
	repomocks "blog-account/internal/repository/mocks"
	"blog-account/internal/service"
	svcmocks "blog-account/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userFixture 组装一个所有协作者都是 Mock 的 UserService
type userFixture struct {
	repo    *repomocks.UserRepository
	tx      *repomocks.Transactor
	cache   *repomocks.UserCache
	hasher  *svcmocks.PasswordHasher
	roles   *svcmocks.RoleAssigner
	avatars *svcmocks.AvatarStore
	janitor *svcmocks.AvatarJanitor
	svc     *service.UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		repo:    new(repomocks.UserRepository),
		cache:   new(repomocks.UserCache),
		hasher:  new(svcmocks.PasswordHasher),
		roles:   new(svcmocks.RoleAssigner),
		avatars: new(svcmocks.AvatarStore),
		janitor: new(svcmocks.AvatarJanitor),
	}
	f.tx = &repomocks.Transactor{Users: f.repo}
	f.svc = service.NewUserService(service.UserDeps{
		Tx:      f.tx,
		Users:   f.repo,
		Cache:   f.cache,
		Hasher:  f.hasher,
		Roles:   f.roles,
		Avatars: f.avatars,
		Janitor: f.janitor,
	})
	return f
}

func (f *userFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.repo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.hasher.AssertExpectations(t)
	f.roles.AssertExpectations(t)
	f.avatars.AssertExpectations(t)
	f.janitor.AssertExpectations(t)
}

// assertNoCreationSideEffects 校验注册被拒绝时没有任何副作用
func (f *userFixture) assertNoCreationSideEffects(t *testing.T) {
	t.Helper()
	f.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	f.roles.AssertNotCalled(t, "CreateRoles", mock.Anything)
	f.avatars.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func avatarFile() *domain.AvatarFile {
	return &domain.AvatarFile{Name: "me.png", ContentType: "image/png", Size: 4, Body: bytes.NewReader([]byte("\x89PNG"))}
}

func strPtr(s string) *string { return &s }

var noOwner = (*domain.User)(nil)

// --- CreateUser ---

func TestUserService_CreateUser_SuccessWithoutAvatar(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	reg := domain.Registration{Email: "alice@example.com", Nickname: "alice", Password: "plain-pass"}

	f.repo.On("FindByEmail", ctx, reg.Email).Return(nil, repository.ErrUserNotFound).Once()
	f.repo.On("FindByNickname", ctx, reg.Nickname).Return(nil, repository.ErrUserNotFound).Once()
	f.hasher.On("Hash", reg.Password).Return("$2a$hashed", nil).Once()
	f.roles.On("CreateRoles", reg.Email).Return([]string{domain.RoleUser}).Once()
	f.repo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == reg.Email && u.Nickname == reg.Nickname && u.Password == "$2a$hashed" && u.AvatarURL == ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 1 // 模拟数据库分配主键
	}).Return(nil).Once()

	created, err := f.svc.CreateUser(ctx, reg, nil)

	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, reg.Email, created.Email)
	assert.Empty(t, created.Password, "返回值不应包含密码哈希")
	assert.NotEmpty(t, created.Roles)
	assert.Empty(t, created.AvatarURL)
	assert.Equal(t, "plain-pass", reg.Password, "调用方的注册数据不应被修改")
	assert.Equal(t, 1, f.tx.Commits)
	f.avatars.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_CreateUser_SuccessWithAvatar(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	reg := domain.Registration{Email: "bob@example.com", Nickname: "bob", Password: "secret"}
	file := avatarFile()

	f.repo.On("FindByEmail", ctx, reg.Email).Return(nil, repository.ErrUserNotFound).Once()
	f.repo.On("FindByNickname", ctx, reg.Nickname).Return(nil, repository.ErrUserNotFound).Once()
	f.hasher.On("Hash", reg.Password).Return("hashed", nil).Once()
	f.roles.On("CreateRoles", reg.Email).Return([]string{domain.RoleUser}).Once()
	f.avatars.On("Upload", ctx, file, noOwner).Return("http://cdn/avatars/abc.png", nil).Once()
	f.repo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.AvatarURL == "http://cdn/avatars/abc.png"
	})).Return(nil).Once()

	created, err := f.svc.CreateUser(ctx, reg, file)

	require.NoError(t, err)
	assert.Equal(t, "http://cdn/avatars/abc.png", created.AvatarURL)
	f.janitor.AssertNotCalled(t, "ScheduleRemoval", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	reg := domain.Registration{Email: "taken@example.com", Nickname: "also-taken", Password: "x"}

	f.repo.On("FindByEmail", ctx, reg.Email).Return(&domain.User{ID: 3, Email: reg.Email}, nil).Once()

	created, err := f.svc.CreateUser(ctx, reg, avatarFile())

	assert.Nil(t, created)
	assert.ErrorIs(t, err, service.ErrDuplicateEmail, "邮箱冲突优先于昵称冲突")
	f.repo.AssertNotCalled(t, "FindByNickname", mock.Anything, mock.Anything)
	f.assertNoCreationSideEffects(t)
	assert.Equal(t, 1, f.tx.Rollbacks)
	f.assertExpectations(t)
}

func TestUserService_CreateUser_DuplicateNickname(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	reg := domain.Registration{Email: "fresh@example.com", Nickname: "alice", Password: "x"}

	f.repo.On("FindByEmail", ctx, reg.Email).Return(nil, repository.ErrUserNotFound).Once()
	f.repo.On("FindByNickname", ctx, reg.Nickname).Return(&domain.User{ID: 1, Nickname: "alice"}, nil).Once()

	created, err := f.svc.CreateUser(ctx, reg, avatarFile())

	assert.Nil(t, created)
	assert.ErrorIs(t, err, service.ErrDuplicateNickname)
	f.assertNoCreationSideEffects(t)
	f.assertExpectations(t)
}

func TestUserService_CreateUser_LookupErrorPropagates(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	f.repo.On("FindByEmail", ctx, "a@x.com").Return(nil, dbErr).Once()

	_, err := f.svc.CreateUser(ctx, domain.Registration{Email: "a@x.com", Nickname: "a", Password: "p"}, nil)

	assert.ErrorIs(t, err, dbErr)
	f.assertNoCreationSideEffects(t)
}

func TestUserService_CreateUser_HashFailure(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	reg := domain.Registration{Email: "a@x.com", Nickname: "a", Password: "p"}
	hashErr := errors.New("entropy exhausted")

	f.repo.On("FindByEmail", ctx, reg.Email).Return(nil, repository.ErrUserNotFound).Once()
	f.repo.On("FindByNickname", ctx, reg.Nickname).Return(nil, repository.ErrUserNotFound).Once()
	f.hasher.On("Hash", reg.Password).Return("", hashErr).Once()

	_, err := f.svc.CreateUser(ctx, reg, nil)

	assert.ErrorIs(t, err, hashErr)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_CreateUser_EmptyRolesFallBackToUser(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	reg := domain.Registration{Email: "a@x.com", Nickname: "a", Password: "p"}

	f.repo.On("FindByEmail", ctx, reg.Email).Return(nil, repository.ErrUserNotFound).Once()
	f.repo.On("FindByNickname", ctx, reg.Nickname).Return(nil, repository.ErrUserNotFound).Once()
	f.hasher.On("Hash", reg.Password).Return("h", nil).Once()
	f.roles.On("CreateRoles", reg.Email).Return(nil).Once()
	f.repo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return len(u.Roles) == 1 && u.Roles[0] == domain.RoleUser
	})).Return(nil).Once()

	created, err := f.svc.CreateUser(ctx, reg, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleUser}, created.Roles)
	f.assertExpectations(t)
}

func TestUserService_CreateUser_SaveFailureSchedulesUploadedAvatar(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	reg := domain.Registration{Email: "a@x.com", Nickname: "a", Password: "p"}
	file := avatarFile()

	f.repo.On("FindByEmail", ctx, reg.Email).Return(nil, repository.ErrUserNotFound).Once()
	f.repo.On("FindByNickname", ctx, reg.Nickname).Return(nil, repository.ErrUserNotFound).Once()
	f.hasher.On("Hash", reg.Password).Return("h", nil).Once()
	f.roles.On("CreateRoles", reg.Email).Return([]string{domain.RoleUser}).Once()
	f.avatars.On("Upload", ctx, file, noOwner).Return("http://cdn/orphan.png", nil).Once()
	// 并发注册在唯一索引上撞车
	f.repo.On("Save", ctx, mock.Anything).Return(repository.ErrDuplicateEntry).Once()
	f.janitor.On("ScheduleRemoval", ctx, "http://cdn/orphan.png").Return(nil).Once()

	created, err := f.svc.CreateUser(ctx, reg, file)

	assert.Nil(t, created)
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry, "落库错误应原样返回")
	assert.Equal(t, 1, f.tx.Rollbacks)
	f.assertExpectations(t)
}

func TestUserService_CreateUser_UploadFailure(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	reg := domain.Registration{Email: "a@x.com", Nickname: "a", Password: "p"}
	file := avatarFile()
	uploadErr := errors.New("bucket unavailable")

	f.repo.On("FindByEmail", ctx, reg.Email).Return(nil, repository.ErrUserNotFound).Once()
	f.repo.On("FindByNickname", ctx, reg.Nickname).Return(nil, repository.ErrUserNotFound).Once()
	f.hasher.On("Hash", reg.Password).Return("h", nil).Once()
	f.roles.On("CreateRoles", reg.Email).Return([]string{domain.RoleUser}).Once()
	f.avatars.On("Upload", ctx, file, noOwner).Return("", uploadErr).Once()

	_, err := f.svc.CreateUser(ctx, reg, file)

	assert.ErrorIs(t, err, uploadErr)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.janitor.AssertNotCalled(t, "ScheduleRemoval", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

// --- UpdateUser ---

func storedAlice() *domain.User {
	return &domain.User{ID: 7, Email: "alice@example.com", Nickname: "alice", Password: "hash", Roles: []string{domain.RoleUser}}
}

func TestUserService_UpdateUser_NilNicknameKeepsStored(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.repo.On("FindByID", ctx, uint(7)).Return(storedAlice(), nil).Once()
	f.repo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 && u.Nickname == "alice" && u.Email == "alice@example.com" && u.Password == "hash"
	})).Return(nil).Once()
	f.cache.On("Evict", ctx, uint(7)).Return(nil).Once()

	updated, err := f.svc.UpdateUser(ctx, domain.ProfilePatch{ID: 7}, nil)

	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Nickname)
	assert.Empty(t, updated.Password)
	f.repo.AssertNotCalled(t, "FindByNickname", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_UpdateUser_OverwritesNickname(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.repo.On("FindByID", ctx, uint(7)).Return(storedAlice(), nil).Once()
	f.repo.On("FindByNickname", ctx, "foo").Return(nil, repository.ErrUserNotFound).Once()
	f.repo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Nickname == "foo" && u.Email == "alice@example.com" && len(u.Roles) == 1
	})).Return(nil).Once()
	f.cache.On("Evict", ctx, uint(7)).Return(nil).Once()

	updated, err := f.svc.UpdateUser(ctx, domain.ProfilePatch{ID: 7, Nickname: strPtr("foo")}, nil)

	require.NoError(t, err)
	assert.Equal(t, "foo", updated.Nickname)
	assert.Equal(t, "alice@example.com", updated.Email, "邮箱永远不会被更新")
	f.assertExpectations(t)
}

func TestUserService_UpdateUser_UnchangedNicknameSkipsCheck(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.repo.On("FindByID", ctx, uint(7)).Return(storedAlice(), nil).Once()
	f.repo.On("Save", ctx, mock.Anything).Return(nil).Once()
	f.cache.On("Evict", ctx, uint(7)).Return(nil).Once()

	_, err := f.svc.UpdateUser(ctx, domain.ProfilePatch{ID: 7, Nickname: strPtr("alice")}, nil)

	require.NoError(t, err)
	f.repo.AssertNotCalled(t, "FindByNickname", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser_NicknameTaken(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.repo.On("FindByID", ctx, uint(7)).Return(storedAlice(), nil).Once()
	f.repo.On("FindByNickname", ctx, "bob").Return(&domain.User{ID: 8, Nickname: "bob"}, nil).Once()

	updated, err := f.svc.UpdateUser(ctx, domain.ProfilePatch{ID: 7, Nickname: strPtr("bob")}, avatarFile())

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, service.ErrDuplicateNickname)
	f.avatars.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Evict", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.repo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrUserNotFound).Once()

	updated, err := f.svc.UpdateUser(ctx, domain.ProfilePatch{ID: 404, Nickname: strPtr("ghost")}, nil)

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_UpdateUser_ReplacesAvatar(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	stored := storedAlice()
	stored.AvatarURL = "http://cdn/old.png"
	file := avatarFile()

	f.repo.On("FindByID", ctx, uint(7)).Return(stored, nil).Once()
	f.avatars.On("Upload", ctx, file, mock.MatchedBy(func(owner *domain.User) bool {
		return owner != nil && owner.ID == 7
	})).Return("http://cdn/new.png", nil).Once()
	f.repo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.AvatarURL == "http://cdn/new.png"
	})).Return(nil).Once()
	f.cache.On("Evict", ctx, uint(7)).Return(nil).Once()
	f.janitor.On("ScheduleRemoval", ctx, "http://cdn/old.png").Return(nil).Once()

	updated, err := f.svc.UpdateUser(ctx, domain.ProfilePatch{ID: 7}, file)

	require.NoError(t, err)
	assert.Equal(t, "http://cdn/new.png", updated.AvatarURL)
	assert.Equal(t, "http://cdn/old.png", stored.AvatarURL, "仓库返回的原记录不应被修改")
	f.assertExpectations(t)
}

func TestUserService_UpdateUser_SaveFailureSchedulesNewUpload(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	file := avatarFile()

	f.repo.On("FindByID", ctx, uint(7)).Return(storedAlice(), nil).Once()
	f.avatars.On("Upload", ctx, file, mock.Anything).Return("http://cdn/new.png", nil).Once()
	f.repo.On("Save", ctx, mock.Anything).Return(errors.New("deadlock")).Once()
	f.janitor.On("ScheduleRemoval", ctx, "http://cdn/new.png").Return(nil).Once()

	_, err := f.svc.UpdateUser(ctx, domain.ProfilePatch{ID: 7}, file)

	assert.EqualError(t, err, "deadlock")
	f.cache.AssertNotCalled(t, "Evict", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

// --- FindUser / FindAllUsers ---

func TestUserService_FindUser_CacheHit(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.cache.On("Get", ctx, uint(7)).Return(&domain.User{ID: 7, Nickname: "alice"}, nil).Once()

	found, err := f.svc.FindUser(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "alice", found.Nickname)
	f.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_FindUser_CacheMissPopulatesCache(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.cache.On("Get", ctx, uint(7)).Return(nil, repository.ErrCacheMiss).Once()
	f.repo.On("FindByID", ctx, uint(7)).Return(storedAlice(), nil).Once()
	f.cache.On("Set", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 && u.Password == ""
	})).Return(nil).Once()

	found, err := f.svc.FindUser(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.Empty(t, found.Password)
	f.assertExpectations(t)
}

func TestUserService_FindUser_CacheFailureFallsBackToRepository(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.cache.On("Get", ctx, uint(7)).Return(nil, errors.New("redis: connection refused")).Once()
	f.repo.On("FindByID", ctx, uint(7)).Return(storedAlice(), nil).Once()
	f.cache.On("Set", ctx, mock.Anything).Return(errors.New("redis: connection refused")).Once()

	found, err := f.svc.FindUser(ctx, 7)

	require.NoError(t, err, "缓存故障不应影响读取")
	assert.Equal(t, uint(7), found.ID)
	f.assertExpectations(t)
}

func TestUserService_FindUser_NotFound(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.cache.On("Get", ctx, uint(9)).Return(nil, repository.ErrCacheMiss).Once()
	f.repo.On("FindByID", ctx, uint(9)).Return(nil, repository.ErrUserNotFound).Once()

	found, err := f.svc.FindUser(ctx, 9)

	assert.Nil(t, found)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_FindUser_WithoutCache(t *testing.T) {
	repo := new(repomocks.UserRepository)
	svc := service.NewUserService(service.UserDeps{
		Tx:      &repomocks.Transactor{Users: repo},
		Users:   repo,
		Hasher:  new(svcmocks.PasswordHasher),
		Roles:   new(svcmocks.RoleAssigner),
		Avatars: new(svcmocks.AvatarStore),
	})
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(7)).Return(storedAlice(), nil).Once()

	found, err := svc.FindUser(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, uint(7), found.ID)
	repo.AssertExpectations(t)
}

func TestUserService_FindAllUsers(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.repo.On("FindAll", ctx).Return([]domain.User{
		{ID: 1, Nickname: "a", Password: "h1"},
		{ID: 2, Nickname: "b", Password: "h2"},
	}, nil).Once()

	users, err := f.svc.FindAllUsers(ctx)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, uint(1), users[0].ID)
	assert.Equal(t, uint(2), users[1].ID)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
	f.assertExpectations(t)
}

func TestUserService_FindAllUsers_Empty(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.repo.On("FindAll", ctx).Return(nil, nil).Once()

	users, err := f.svc.FindAllUsers(ctx)

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

// --- DeleteUser ---

func TestUserService_DeleteUser_Success(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	stored := storedAlice()
	stored.AvatarURL = "http://cdn/a.png"

	f.repo.On("FindByID", ctx, uint(7)).Return(stored, nil).Once()
	f.repo.On("Delete", ctx, stored).Return(nil).Once()
	f.cache.On("Evict", ctx, uint(7)).Return(nil).Once()
	f.janitor.On("ScheduleRemoval", ctx, "http://cdn/a.png").Return(nil).Once()

	err := f.svc.DeleteUser(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.Commits)
	f.assertExpectations(t)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	f.repo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrUserNotFound).Once()

	err := f.svc.DeleteUser(ctx, 404)

	assert.ErrorIs(t, err, service.ErrUserNotFound)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Evict", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUserService_DeleteUser_ConcurrentDeleteReportsNotFound(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	stored := storedAlice()

	f.repo.On("FindByID", ctx, uint(7)).Return(stored, nil).Once()
	f.repo.On("Delete", ctx, stored).Return(repository.ErrUserNotFound).Once()

	err := f.svc.DeleteUser(ctx, 7)

	assert.ErrorIs(t, err, service.ErrUserNotFound)
	f.janitor.AssertNotCalled(t, "ScheduleRemoval", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestNewUserService_PanicsOnMissingDeps(t *testing.T) {
	repo := new(repomocks.UserRepository)
	assert.Panics(t, func() { service.NewUserService(service.UserDeps{}) })
	assert.Panics(t, func() {
		service.NewUserService(service.UserDeps{Tx: &repomocks.Transactor{Users: repo}, Users: repo})
	})
}
