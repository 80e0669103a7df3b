package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"Sizzle_Season/internal/service"
)

const (
	LeaderboardKeyPrefix = "lb:week"
	LeaderboardTTL       = 21 * 24 * time.Hour
)

// LeaderboardRepository 周榜，ZSET 按 ISO 周分键
type LeaderboardRepository struct {
	RDB *redis.Client
}

func weekKey(at time.Time) string {
	year, week := at.UTC().ISOWeek()
	return fmt.Sprintf("%s:%d-%02d", LeaderboardKeyPrefix, year, week)
}

func (r *LeaderboardRepository) Incr(ctx context.Context, userID uint64, points int64, at time.Time) error {
	key := weekKey(at)
	if err := r.RDB.ZIncrBy(ctx, key, float64(points), strconv.FormatUint(userID, 10)).Err(); err != nil {
		return err
	}
	// 过期留三周，方便上周榜回看
	return r.RDB.Expire(ctx, key, LeaderboardTTL).Err()
}

func (r *LeaderboardRepository) Top(ctx context.Context, at time.Time, n int64) ([]service.LeaderboardEntry, error) {
	if n <= 0 || n > 100 {
		n = 10
	}
	rows, err := r.RDB.ZRevRangeWithScores(ctx, weekKey(at), 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]service.LeaderboardEntry, 0, len(rows))
	for i, z := range rows {
		member, _ := z.Member.(string)
		uid, _ := strconv.ParseUint(member, 10, 64)
		out = append(out, service.LeaderboardEntry{
			UserID: uid,
			Score:  int64(z.Score),
			Rank:   i + 1,
		})
	}
	return out, nil
}
