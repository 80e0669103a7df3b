package service

import (
	"context"
	"time"

	"Sizzle_Season/internal/model"
)

// 仓储接口由 service 定义，mysql 与 memory 两套实现
// 事务性不变量（幂等插入、容量检查、点赞去重）都在实现内部保证

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID uint64, hash string) error
}

type ScoreEventRepo interface {
	// Record 追加一条积分流水；(user, kind, source) 重复时返回 model.ErrDuplicateEvent
	// 实现内同步维护 users.total_score 冗余计数和 outbox 投递行
	Record(ctx context.Context, ev *model.ScoreEvent) error
	SumPoints(ctx context.Context, userID uint64) (int64, error)
	ListByUser(ctx context.Context, userID uint64, limit int) ([]model.ScoreEvent, error)
}

type AchievementRepo interface {
	ListAll(ctx context.Context) ([]model.Achievement, error)
	ListUnlocked(ctx context.Context, userID uint64) ([]model.UserAchievement, error)
	// Unlock 幂等解锁；已解锁时返回 false 且不改动 unlocked_at
	Unlock(ctx context.Context, userID, achievementID uint64, at time.Time) (bool, error)
	Snapshot(ctx context.Context, userID uint64) (model.ActivitySnapshot, error)
}

type GroupRepo interface {
	// Create 建组并让创建者以 owner 身份入组，单事务
	Create(ctx context.Context, g *model.Group) error
	FindByID(ctx context.Context, id uint64) (*model.Group, error)
	// Join 容量检查和插入必须在同一临界区内完成
	Join(ctx context.Context, groupID, userID uint64) error
	Leave(ctx context.Context, groupID, userID uint64) error
	List(ctx context.Context, offset, limit int) ([]model.GroupWithCount, error)
	MemberCount(ctx context.Context, groupID uint64) (int64, error)
}

type SubmissionRepo interface {
	Create(ctx context.Context, s *model.Submission) error
	FindByID(ctx context.Context, id uint64) (*model.Submission, error)
	// Like 去重点赞并自增计数，返回作者ID供积分入账
	Like(ctx context.Context, userID, submissionID uint64) (authorID uint64, err error)
	IsLiked(ctx context.Context, userID, submissionID uint64) (bool, error)
	AddComment(ctx context.Context, c *model.Comment) error
	// ListByChallengeCursor 时间游标分页，lastCreatedAt 为零表示第一页
	ListByChallengeCursor(ctx context.Context, challengeID, lastID uint64, lastCreatedAt int64, limit int) ([]model.Submission, error)
	ListByAuthor(ctx context.Context, authorID uint64, limit int) ([]model.Submission, error)
	// TopByChallenge 点赞最多的投稿，平手取先发的
	TopByChallenge(ctx context.Context, challengeID uint64) (*model.Submission, error)
}

type ChallengeRepo interface {
	Create(ctx context.Context, ch *model.Challenge) error
	FindByID(ctx context.Context, id uint64) (*model.Challenge, error)
	// Current 当前进行中的挑战；没有则返回最近一个未开始的
	Current(ctx context.Context, now time.Time) (*model.Challenge, error)
	ListUnsettledEnded(ctx context.Context, now time.Time) ([]model.Challenge, error)
	MarkSettled(ctx context.Context, id, winnerSubmissionID uint64) error
	CountParticipants(ctx context.Context, challengeID uint64) (int64, error)
	CountSubmissions(ctx context.Context, challengeID uint64) (int64, error)
}

type OutboxRepo interface {
	ListPending(ctx context.Context, batchSize int) ([]model.ScoreOutbox, error)
	MarkSent(ctx context.Context, id uint64) error
	MarkRetry(ctx context.Context, id uint64) error
}

// UserScore 对账用的 (用户, 冗余计数) 对
type UserScore struct {
	ID         uint64
	TotalScore int64
}

type ReconcilerRepo interface {
	ListUserScores(ctx context.Context, batchSize int, lastID uint64) ([]UserScore, uint64, error)
	RealTotal(ctx context.Context, userID uint64) (int64, error)
	FixTotal(ctx context.Context, userID uint64, total int64) error
}

// Leaderboard 周榜，按积分增量累加
type Leaderboard interface {
	Incr(ctx context.Context, userID uint64, points int64, at time.Time) error
	Top(ctx context.Context, at time.Time, n int64) ([]LeaderboardEntry, error)
}

type LeaderboardEntry struct {
	UserID uint64 `json:"user_id"`
	Score  int64  `json:"score"`
	Rank   int    `json:"rank"`
}
