package service

import (
	"time"

	"Sizzle_Season/internal/model"
)

// ChallengeStateAt 纯函数：[StartAt, EndAt) 左闭右开
// Upcoming -> Active -> Ended 只随时钟单向前进
func ChallengeStateAt(ch *model.Challenge, now time.Time) model.ChallengeState {
	switch {
	case now.Before(ch.StartAt):
		return model.ChallengeUpcoming
	case now.Before(ch.EndAt):
		return model.ChallengeActive
	default:
		return model.ChallengeEnded
	}
}

// ChallengeRemaining 剩余时长，到期及之后恒为零
func ChallengeRemaining(ch *model.Challenge, now time.Time) time.Duration {
	if !now.Before(ch.EndAt) {
		return 0
	}
	return ch.EndAt.Sub(now)
}
