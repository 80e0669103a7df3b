package service

import (
	"context"
	"time"

	"Sizzle_Season/internal/model"
)

// ProfileService 组装个人页：身份、权威总分、段位进度、活动统计、成就、近期投稿
type ProfileService struct {
	users   UserRepo
	score   *ScoreService
	achieve *AchievementService
	repo    AchievementRepo
	subs    SubmissionRepo
}

func NewProfileService(users UserRepo, score *ScoreService, achieve *AchievementService, repo AchievementRepo, subs SubmissionRepo) *ProfileService {
	return &ProfileService{
		users:   users,
		score:   score,
		achieve: achieve,
		repo:    repo,
		subs:    subs,
	}
}

type ProfileView struct {
	ID           uint64              `json:"id"`
	Username     string              `json:"username"`
	DisplayName  string              `json:"display_name"`
	Bio          string              `json:"bio"`
	AvatarURL    string              `json:"avatar_url"`
	TotalScore   int64               `json:"total_score"`
	Rank         RankInfo            `json:"rank"`
	Stats        StatsView           `json:"stats"`
	Achievements []AchievementStatus `json:"achievements"`
	Recent       []model.Submission  `json:"recent_submissions"`
	JoinedAt     time.Time           `json:"joined_at"`
}

type StatsView struct {
	Submissions   int64 `json:"submissions"`
	LikesReceived int64 `json:"likes_received"`
	GroupsCreated int64 `json:"groups_created"`
	ChallengeWins int64 `json:"challenge_wins"`
}

func (s *ProfileService) Get(ctx context.Context, userID uint64) (*ProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, model.ErrUserNotFound
	}

	// 总分用流水求和，不信冗余列
	total, err := s.score.TotalScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.repo.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements, err := s.achieve.ListWithStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.subs.ListByAuthor(ctx, userID, 6)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		TotalScore:  total,
		Rank:        RankOf(total),
		Stats: StatsView{
			Submissions:   snapshot.Submissions,
			LikesReceived: snapshot.LikesReceived,
			GroupsCreated: snapshot.GroupsCreated,
			ChallengeWins: snapshot.ChallengeWins,
		},
		Achievements: achievements,
		Recent:       recent,
		JoinedAt:     user.CreatedAt,
	}, nil
}
