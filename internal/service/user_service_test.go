package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sizzle_Season/internal/pkg"
	"Sizzle_Season/internal/repository/memory"
	"Sizzle_Season/internal/service"
)

type fakeCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (f *fakeCodeStore) SetCode(ctx context.Context, scope, email, code string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[scope+":"+email] = code
	return nil
}

func (f *fakeCodeStore) GetCode(ctx context.Context, scope, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.codes[scope+":"+email]
	if !ok {
		return "", assert.AnError
	}
	return code, nil
}

func (f *fakeCodeStore) DeleteCode(ctx context.Context, scope, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.codes, scope+":"+email)
	return nil
}

type fakeSessions struct {
	mu     sync.Mutex
	tokens map[uint64]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: make(map[uint64]string)}
}

func (f *fakeSessions) AddUserToken(ctx context.Context, userID uint64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[userID] = token
	return nil
}

func (f *fakeSessions) GetUserToken(ctx context.Context, userID uint64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.tokens[userID]
	if !ok {
		return "", assert.AnError
	}
	return token, nil
}

func (f *fakeSessions) ExtendUserToken(ctx context.Context, userID uint64) error { return nil }

func (f *fakeSessions) DeleteUserToken(ctx context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, userID)
	return nil
}

type userEnv struct {
	users    *memory.UserRepository
	codes    *fakeCodeStore
	sessions *fakeSessions
	svc      *service.UserService
}

func newUserEnv() *userEnv {
	store := memory.NewStore()
	codes := newFakeCodeStore()
	sessions := newFakeSessions()
	users := memory.NewUserRepository(store)
	tokens := pkg.NewTokenManager("access-secret", "refresh-secret")
	emailSvc := service.NewEmailService(pkg.SMTPConfig{}, codes)
	return &userEnv{
		users:    users,
		codes:    codes,
		sessions: sessions,
		svc:      service.NewUserService(users, sessions, emailSvc, tokens),
	}
}

func (e *userEnv) register(t *testing.T, username, password, email string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.codes.SetCode(ctx, "register", email, "123456", time.Minute))
	require.NoError(t, e.svc.Register(ctx, username, password, email, "", "123456"))
}

func TestRegisterRequiresValidCode(t *testing.T) {
	e := newUserEnv()
	ctx := context.Background()

	err := e.svc.Register(ctx, "alice", "pw", "alice@example.com", "", "000000")
	assert.Error(t, err)

	require.NoError(t, e.codes.SetCode(ctx, "register", "alice@example.com", "123456", time.Minute))
	err = e.svc.Register(ctx, "alice", "pw", "alice@example.com", "", "999999")
	assert.Error(t, err)

	// 正确验证码通过，显示名缺省取用户名
	require.NoError(t, e.codes.SetCode(ctx, "register", "alice@example.com", "123456", time.Minute))
	require.NoError(t, e.svc.Register(ctx, "alice", "pw", "alice@example.com", "", "123456"))

	u, err := e.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.DisplayName)
	assert.NotEqual(t, "pw", u.Password)
}

func TestRegisterCodeConsumedOnce(t *testing.T) {
	e := newUserEnv()
	ctx := context.Background()

	require.NoError(t, e.codes.SetCode(ctx, "register", "bob@example.com", "123456", time.Minute))
	require.NoError(t, e.svc.Register(ctx, "bob", "pw", "bob@example.com", "Bob", "123456"))

	// 验证码已被消费，同码重放失败
	err := e.svc.Register(ctx, "bob2", "pw", "bob@example.com", "", "123456")
	assert.Error(t, err)
}

func TestLoginAndSession(t *testing.T) {
	e := newUserEnv()
	ctx := context.Background()
	e.register(t, "carol", "secret", "carol@example.com")

	_, err := e.svc.Login(ctx, "carol", "wrong")
	assert.Error(t, err)

	pair, err := e.svc.Login(ctx, "carol", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// 登录邮箱也行
	_, err = e.svc.Login(ctx, "carol@example.com", "secret")
	require.NoError(t, err)

	u, err := e.users.FindByUsername(ctx, "carol")
	require.NoError(t, err)
	stored, err := e.sessions.GetUserToken(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored)

	require.NoError(t, e.svc.Logout(ctx, u.ID))
	_, err = e.sessions.GetUserToken(ctx, u.ID)
	assert.Error(t, err)
}

func TestChangePasswordKicksSession(t *testing.T) {
	e := newUserEnv()
	ctx := context.Background()
	e.register(t, "dave", "old-pw", "dave@example.com")

	_, err := e.svc.Login(ctx, "dave", "old-pw")
	require.NoError(t, err)
	u, err := e.users.FindByUsername(ctx, "dave")
	require.NoError(t, err)

	assert.Error(t, e.svc.ChangePassword(ctx, u.ID, "bad-old", "new-pw"))
	require.NoError(t, e.svc.ChangePassword(ctx, u.ID, "old-pw", "new-pw"))

	// 改密后旧会话被踢
	_, err = e.sessions.GetUserToken(ctx, u.ID)
	assert.Error(t, err)

	_, err = e.svc.Login(ctx, "dave", "old-pw")
	assert.Error(t, err)
	_, err = e.svc.Login(ctx, "dave", "new-pw")
	require.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	e := newUserEnv()
	ctx := context.Background()
	e.register(t, "erin", "old-pw", "erin@example.com")

	require.NoError(t, e.codes.SetCode(ctx, "reset", "erin@example.com", "654321", time.Minute))
	require.NoError(t, e.svc.ResetPassword(ctx, "erin@example.com", "654321", "fresh-pw"))

	_, err := e.svc.Login(ctx, "erin", "fresh-pw")
	require.NoError(t, err)
}

func TestTokenRefresh(t *testing.T) {
	e := newUserEnv()
	ctx := context.Background()
	e.register(t, "frank", "pw", "frank@example.com")

	pair, err := e.svc.Login(ctx, "frank", "pw")
	require.NoError(t, err)

	next, err := e.svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	_, err = e.svc.Refresh("not-a-token")
	assert.Error(t, err)
}
