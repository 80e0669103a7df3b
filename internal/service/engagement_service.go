package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"Sizzle_Season/internal/model"
)

// LikeCache 点赞读缓存（集合+计数），写库成功后尽力维护
type LikeCache interface {
	AddLike(ctx context.Context, userID, submissionID uint64) error
	IsLikedCached(ctx context.Context, userID, submissionID uint64) (liked bool, hit bool, err error)
	WarmIsLiked(ctx context.Context, userID, submissionID uint64, liked bool)
	GetCountCached(ctx context.Context, submissionID uint64) (int64, bool, error)
	SetCount(ctx context.Context, submissionID uint64, cnt int64) error
	DeleteCount(ctx context.Context, submissionID uint64) error
}

// Locker 重建计数时用的分布式锁
type Locker interface {
	Acquire(ctx context.Context, submissionID uint64, token string) (bool, error)
	Release(ctx context.Context, submissionID uint64, token string) error
}

// EngagementService 投稿/点赞/评论，计分动作落到 ScoreService
type EngagementService struct {
	subs       SubmissionRepo
	challenges ChallengeRepo
	score      *ScoreService
	achieve    *AchievementService
	cache      LikeCache
	lock       Locker
}

func NewEngagementService(subs SubmissionRepo, challenges ChallengeRepo, score *ScoreService, achieve *AchievementService, cache LikeCache, lock Locker) *EngagementService {
	return &EngagementService{
		subs:       subs,
		challenges: challenges,
		score:      score,
		achieve:    achieve,
		cache:      cache,
		lock:       lock,
	}
}

// Submit 向进行中的挑战投稿，成功后记 dish_submitted 积分
func (s *EngagementService) Submit(ctx context.Context, authorID, challengeID uint64, title, desc, imageURL string) (*model.Submission, error) {
	if title == "" {
		return nil, errors.New("submission title required")
	}

	ch, err := s.challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ChallengeStateAt(ch, time.Now()) != model.ChallengeActive {
		return nil, model.ErrChallengeNotActive
	}

	sub := &model.Submission{
		ChallengeID: challengeID,
		AuthorID:    authorID,
		Title:       title,
		Description: desc,
		ImageURL:    imageURL,
	}
	if err = s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	if _, err = s.score.Record(ctx, authorID, model.EventDishSubmitted, strconv.FormatUint(sub.ID, 10)); err != nil && !errors.Is(err, model.ErrDuplicateEvent) {
		return nil, err
	}

	// 成就判定失败不回滚投稿
	_, _ = s.achieve.Evaluate(ctx, authorID)
	return sub, nil
}

// Like 点赞：同一用户对同一投稿只生效一次，重复返回 ErrDuplicateLike
// 每个有效点赞恰好给作者记一条 like_received 流水；自赞不计分
func (s *EngagementService) Like(ctx context.Context, likerID, submissionID uint64) (*model.Submission, error) {
	if likerID == 0 || submissionID == 0 {
		return nil, errors.New("invalid id")
	}

	authorID, err := s.subs.Like(ctx, likerID, submissionID)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateLike) && s.cache != nil {
			s.cache.WarmIsLiked(ctx, likerID, submissionID, true)
		}
		return nil, err
	}

	// 缓存尽力维护，失败删计数键交给读侧重建
	if s.cache != nil {
		if err := s.cache.AddLike(ctx, likerID, submissionID); err != nil {
			_ = s.cache.DeleteCount(ctx, submissionID)
		}
	}

	if authorID != likerID {
		src := fmt.Sprintf("%d:%d", submissionID, likerID)
		if _, err = s.score.Record(ctx, authorID, model.EventLikeReceived, src); err != nil && !errors.Is(err, model.ErrDuplicateEvent) {
			return nil, err
		}
		_, _ = s.achieve.Evaluate(ctx, authorID)
	}

	return s.subs.FindByID(ctx, submissionID)
}

// Comment 评论只涨计数不计分（策略表里没有评论项）
func (s *EngagementService) Comment(ctx context.Context, authorID, submissionID uint64, body string) (*model.Comment, error) {
	if body == "" {
		return nil, errors.New("comment body required")
	}
	comment := &model.Comment{
		SubmissionID: submissionID,
		AuthorID:     authorID,
		Body:         body,
	}
	if err := s.subs.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *EngagementService) Feed(ctx context.Context, challengeID, lastID uint64, lastCreatedAt int64, limit int) ([]model.Submission, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.subs.ListByChallengeCursor(ctx, challengeID, lastID, lastCreatedAt, limit)
}

func (s *EngagementService) IsLiked(ctx context.Context, userID, submissionID uint64) (bool, error) {
	if s.cache != nil {
		if b, hit, err := s.cache.IsLikedCached(ctx, userID, submissionID); err == nil && hit {
			return b, nil
		}
	}
	liked, err := s.subs.IsLiked(ctx, userID, submissionID)
	if err == nil && s.cache != nil {
		s.cache.WarmIsLiked(ctx, userID, submissionID, liked)
	}
	return liked, err
}

// LikeCount 先读缓存；miss 时拿锁回源重建，拿不到锁就短暂退避再读一次
func (s *EngagementService) LikeCount(ctx context.Context, submissionID uint64) (int64, error) {
	if s.cache == nil {
		return s.likeCountStored(ctx, submissionID)
	}

	if v, hit, err := s.cache.GetCountCached(ctx, submissionID); err == nil && hit {
		return v, nil
	}

	token := fmt.Sprintf("%d-%d", submissionID, time.Now().UnixNano())
	if s.lock != nil {
		got, _ := s.lock.Acquire(ctx, submissionID, token)
		if got {
			defer func() { _ = s.lock.Release(ctx, submissionID, token) }()

			// double check：拿锁期间可能已有人回填
			if v, hit, err := s.cache.GetCountCached(ctx, submissionID); err == nil && hit {
				return v, nil
			}
			v, err := s.likeCountStored(ctx, submissionID)
			if err != nil {
				return 0, err
			}
			_ = s.cache.SetCount(ctx, submissionID, v)
			return v, nil
		}

		time.Sleep(50 * time.Millisecond)
		if v, hit, err := s.cache.GetCountCached(ctx, submissionID); err == nil && hit {
			return v, nil
		}
	}
	return s.likeCountStored(ctx, submissionID)
}

func (s *EngagementService) likeCountStored(ctx context.Context, submissionID uint64) (int64, error) {
	sub, err := s.subs.FindByID(ctx, submissionID)
	if err != nil {
		return 0, err
	}
	return sub.LikeCount, nil
}
