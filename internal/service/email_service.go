package service

import (
	"context"
	"errors"
	"time"

	"Sizzle_Season/internal/pkg"
)

const EmailCodeTTL = 5 * time.Minute

// CodeStore 验证码存储，带 TTL
type CodeStore interface {
	SetCode(ctx context.Context, scope, email, code string, ttl time.Duration) error
	GetCode(ctx context.Context, scope, email string) (string, error)
	DeleteCode(ctx context.Context, scope, email string) error
}

type EmailService struct {
	cfg   pkg.SMTPConfig
	codes CodeStore
}

func NewEmailService(cfg pkg.SMTPConfig, codes CodeStore) *EmailService {
	return &EmailService{cfg: cfg, codes: codes}
}

// SendCode 生成并发送验证码，scope 区分 register / reset
func (s *EmailService) SendCode(ctx context.Context, scope, email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.codes.SetCode(ctx, scope, email, code, EmailCodeTTL); err != nil {
		return err
	}

	html := pkg.EmailCodeHTML(scope, code, EmailCodeTTL)
	return pkg.SendEmail(s.cfg, email, "Sizzle Season verification code", html)
}

// VerifyCode 校验并一次性消费验证码
func (s *EmailService) VerifyCode(ctx context.Context, scope, email, code string) (bool, error) {
	val, err := s.codes.GetCode(ctx, scope, email)
	if err != nil {
		return false, err
	}
	if val != code {
		return false, errors.New("verification code mismatch")
	}
	if err = s.codes.DeleteCode(ctx, scope, email); err != nil {
		return false, err
	}
	return true, nil
}
