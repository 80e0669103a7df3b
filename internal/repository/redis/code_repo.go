package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeNotFound = errors.New("verification code not found")

const EmailCodePrefix = "email:code"

// CodeRepository 邮件验证码存储，scope 区分 register / reset
type CodeRepository struct {
	RDB *redis.Client
}

func (r *CodeRepository) key(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
}

func (r *CodeRepository) SetCode(ctx context.Context, scope, email, code string, ttl time.Duration) error {
	return r.RDB.Set(ctx, r.key(scope, email), code, ttl).Err()
}

func (r *CodeRepository) GetCode(ctx context.Context, scope, email string) (string, error) {
	val, err := r.RDB.Get(ctx, r.key(scope, email)).Result()
	if errors.Is(err, redis.Nil) {
		// 不存在或已过期
		return "", ErrCodeNotFound
	}
	return val, err
}

func (r *CodeRepository) DeleteCode(ctx context.Context, scope, email string) error {
	return r.RDB.Del(ctx, r.key(scope, email)).Err()
}
