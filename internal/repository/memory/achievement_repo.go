package memory

import (
	"context"
	"sort"
	"time"

	"Sizzle_Season/internal/model"
)

// AchievementRepository service.AchievementRepo 的内存实现
type AchievementRepository struct {
	s *Store
}

func NewAchievementRepository(s *Store) *AchievementRepository {
	return &AchievementRepository{s: s}
}

func (r *AchievementRepository) ListAll(ctx context.Context) ([]model.Achievement, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Achievement, 0, len(s.achievs))
	for _, a := range s.achievs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AchievementRepository) ListUnlocked(ctx context.Context, userID uint64) ([]model.UserAchievement, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.UserAchievement
	for id := range s.achievs {
		if at, ok := s.unlocks[pairKey(userID, id)]; ok {
			out = append(out, model.UserAchievement{UserID: userID, AchievementID: id, UnlockedAt: at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out, nil
}

func (r *AchievementRepository) Unlock(ctx context.Context, userID, achievementID uint64, at time.Time) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(userID, achievementID)
	if _, done := s.unlocks[key]; done {
		return false, nil
	}
	s.unlocks[key] = at
	return true, nil
}

func (r *AchievementRepository) Snapshot(ctx context.Context, userID uint64) (model.ActivitySnapshot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap model.ActivitySnapshot
	for _, sub := range s.submissions {
		if sub.AuthorID == userID {
			snap.Submissions++
			snap.LikesReceived += sub.LikeCount
		}
	}
	for _, g := range s.groups {
		if g.CreatorID == userID {
			snap.GroupsCreated++
		}
	}
	for _, ev := range s.events {
		if ev.UserID == userID && ev.Kind == model.EventChallengeWon {
			snap.ChallengeWins++
		}
	}
	return snap, nil
}
