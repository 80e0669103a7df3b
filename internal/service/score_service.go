package service

import (
	"context"
	"errors"
	"time"

	"Sizzle_Season/internal/model"
)

// ScoreService 积分账本：流水只追加，总分是流水求和
type ScoreService struct {
	repo         ScoreEventRepo
	board        Leaderboard
	policy       map[model.EventKind]int64
	dailyEnabled bool
}

func NewScoreService(repo ScoreEventRepo, board Leaderboard, policy map[model.EventKind]int64, dailyEnabled bool) *ScoreService {
	return &ScoreService{
		repo:         repo,
		board:        board,
		policy:       policy,
		dailyEnabled: dailyEnabled,
	}
}

// Record 入账一条积分事件，sourceID 是外部重试的幂等键
func (s *ScoreService) Record(ctx context.Context, userID uint64, kind model.EventKind, sourceID string) (*model.ScoreEvent, error) {
	if userID == 0 || sourceID == "" {
		return nil, errors.New("invalid user id or source id")
	}
	points, ok := s.policy[kind]
	if !ok {
		return nil, model.ErrInvalidEventKind
	}

	ev := &model.ScoreEvent{
		UserID:   userID,
		Kind:     kind,
		SourceID: sourceID,
		Points:   points,
	}
	if err := s.repo.Record(ctx, ev); err != nil {
		return nil, err
	}

	// 周榜尽力而为，失败不影响入账（对账兜底）
	if s.board != nil {
		_ = s.board.Incr(ctx, userID, points, time.Now())
	}
	return ev, nil
}

// TotalScore 权威总分：对该用户的全部流水求和
func (s *ScoreService) TotalScore(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.SumPoints(ctx, userID)
}

func (s *ScoreService) History(ctx context.Context, userID uint64, limit int) ([]model.ScoreEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

// DailyCheckIn 每日签到：幂等键取 UTC 日期，一天最多记一次
// 返回的 bool 表示本次是否真的入账
func (s *ScoreService) DailyCheckIn(ctx context.Context, userID uint64, now time.Time) (*model.ScoreEvent, bool, error) {
	if !s.dailyEnabled {
		return nil, false, nil
	}
	ev, err := s.Record(ctx, userID, model.EventDailyEngagement, now.UTC().Format("2006-01-02"))
	if errors.Is(err, model.ErrDuplicateEvent) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return ev, true, nil
}

// WeeklyTop 本周榜前 n 名
func (s *ScoreService) WeeklyTop(ctx context.Context, now time.Time, n int64) ([]LeaderboardEntry, error) {
	if s.board == nil {
		return nil, nil
	}
	return s.board.Top(ctx, now, n)
}
