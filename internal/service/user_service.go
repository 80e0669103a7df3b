package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"Sizzle_Season/internal/model"
	"Sizzle_Season/internal/pkg"
)

// SessionStore 登录态存储，单点登录：一个用户只保留最新 token
type SessionStore interface {
	AddUserToken(ctx context.Context, userID uint64, token string) error
	GetUserToken(ctx context.Context, userID uint64) (string, error)
	ExtendUserToken(ctx context.Context, userID uint64) error
	DeleteUserToken(ctx context.Context, userID uint64) error
}

type UserService struct {
	repo     UserRepo
	sessions SessionStore
	emailSvc *EmailService
	tokens   *pkg.TokenManager
}

func NewUserService(repo UserRepo, sessions SessionStore, emailSvc *EmailService, tokens *pkg.TokenManager) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		emailSvc: emailSvc,
		tokens:   tokens,
	}
}

func (s *UserService) Register(ctx context.Context, username, password, email, displayName, code string) error {
	if _, err := s.emailSvc.VerifyCode(ctx, "register", email, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if displayName == "" {
		displayName = username
	}

	return s.repo.Create(ctx, &model.User{
		Username:    username,
		Password:    string(hash),
		Email:       email,
		DisplayName: displayName,
	})
}

func (s *UserService) Login(ctx context.Context, username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	// 写入会话，挤掉同账号旧登录
	if err = s.sessions.AddUserToken(ctx, user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	return s.sessions.DeleteUserToken(ctx, userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return s.tokens.Refresh(refreshToken)
}

// ResetPassword 验证码重置密码
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(ctx, "reset", email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user.ID, string(hash))
}

// ChangePassword 登录态修改密码，成功后踢掉当前会话
func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	return s.Logout(ctx, userID)
}

func (s *UserService) Get(ctx context.Context, userID uint64) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}
