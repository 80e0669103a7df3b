package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeSetTTL       = 24 * time.Hour
	LikeCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	LikeSetKeyPrefix = "like:set:submission" // 某投稿已点赞用户ID集合
	LikeCntKeyPrefix = "like:cnt:submission" // 某投稿点赞计数
	LockKeyPrefix    = "lock:like:submission"
)

type LikeCacheRepository struct {
	RDB        *redis.Client
	likeSetTTL time.Duration
	likeCntTTL time.Duration
}

func NewLikeCacheRepository(rdb *redis.Client) *LikeCacheRepository {
	return &LikeCacheRepository{
		RDB:        rdb,
		likeSetTTL: LikeSetTTL,
		likeCntTTL: LikeCntTTL,
	}
}

func (r *LikeCacheRepository) likeSetKey(submissionID uint64) string {
	return fmt.Sprintf("%s:%d", LikeSetKeyPrefix, submissionID)
}

func (r *LikeCacheRepository) likeCntKey(submissionID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, submissionID)
}

// AddLike 写库成功后调用：集合加成员，计数自增
func (r *LikeCacheRepository) AddLike(ctx context.Context, userID, submissionID uint64) error {
	k := r.likeSetKey(submissionID)
	if err := r.RDB.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	_ = r.RDB.Expire(ctx, k, r.likeSetTTL).Err()

	ck := r.likeCntKey(submissionID)
	if err := r.RDB.Incr(ctx, ck).Err(); err != nil {
		return err
	}
	_ = r.RDB.Expire(ctx, ck, r.likeCntTTL).Err()
	return nil
}

func (r *LikeCacheRepository) IsLikedCached(ctx context.Context, userID, submissionID uint64) (bool, bool, error) {
	k := r.likeSetKey(submissionID)
	exists, err := r.RDB.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := r.RDB.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

// WarmIsLiked 惰性回填：只在集合已存在时写，避免无界扩张
func (r *LikeCacheRepository) WarmIsLiked(ctx context.Context, userID, submissionID uint64, liked bool) {
	k := r.likeSetKey(submissionID)
	if ok, _ := r.RDB.Exists(ctx, k).Result(); ok > 0 {
		if liked {
			_ = r.RDB.SAdd(ctx, k, userID).Err()
		} else {
			_ = r.RDB.SRem(ctx, k, userID).Err()
		}
		_ = r.RDB.Expire(ctx, k, r.likeSetTTL).Err()
	}
}

func (r *LikeCacheRepository) GetCountCached(ctx context.Context, submissionID uint64) (int64, bool, error) {
	val, err := r.RDB.Get(ctx, r.likeCntKey(submissionID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

func (r *LikeCacheRepository) SetCount(ctx context.Context, submissionID uint64, cnt int64) error {
	return r.RDB.Set(ctx, r.likeCntKey(submissionID), cnt, r.likeCntTTL).Err()
}

// DeleteCount 删计数键，读侧拿锁重建
func (r *LikeCacheRepository) DeleteCount(ctx context.Context, submissionID uint64) error {
	err := r.RDB.Del(ctx, r.likeCntKey(submissionID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

type DistLock struct {
	RDB *redis.Client
}

func (l *DistLock) Acquire(ctx context.Context, submissionID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, submissionID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用 lua 保证比对和删除的原子性
func (l *DistLock) Release(ctx context.Context, submissionID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, submissionID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
