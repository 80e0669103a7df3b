package service

import (
	"context"
	"time"

	"Sizzle_Season/internal/model"
)

type AchievementService struct {
	repo AchievementRepo
}

func NewAchievementService(repo AchievementRepo) *AchievementService {
	return &AchievementService{repo: repo}
}

// Evaluate 对照活动快照判定全部成就，返回本次新解锁的
// 幂等：已解锁的跳过，解锁时间只写一次，永不回收
func (s *AchievementService) Evaluate(ctx context.Context, userID uint64) ([]model.Achievement, error) {
	snapshot, err := s.repo.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var unlocked []model.Achievement
	for _, a := range all {
		if !criteriaMet(a, snapshot) {
			continue
		}
		fresh, err := s.repo.Unlock(ctx, userID, a.ID, now)
		if err != nil {
			return nil, err
		}
		if fresh {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

// ListWithStatus 全部成就加上该用户的解锁状态，profile 页用
func (s *AchievementService) ListWithStatus(ctx context.Context, userID uint64) ([]AchievementStatus, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[uint64]time.Time, len(rows))
	for _, r := range rows {
		unlockedAt[r.AchievementID] = r.UnlockedAt
	}

	out := make([]AchievementStatus, 0, len(all))
	for _, a := range all {
		st := AchievementStatus{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			st.Unlocked = true
			st.UnlockedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

type AchievementStatus struct {
	model.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

func criteriaMet(a model.Achievement, s model.ActivitySnapshot) bool {
	switch a.CriteriaType {
	case model.CriteriaSubmissions:
		return s.Submissions >= a.CriteriaValue
	case model.CriteriaLikesReceived:
		return s.LikesReceived >= a.CriteriaValue
	case model.CriteriaGroupsCreated:
		return s.GroupsCreated >= a.CriteriaValue
	case model.CriteriaChallengeWins:
		return s.ChallengeWins >= a.CriteriaValue
	default:
		return false
	}
}
