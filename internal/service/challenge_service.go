package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"Sizzle_Season/internal/model"
)

type ChallengeService struct {
	repo    ChallengeRepo
	subs    SubmissionRepo
	score   *ScoreService
	achieve *AchievementService
}

func NewChallengeService(repo ChallengeRepo, subs SubmissionRepo, score *ScoreService, achieve *AchievementService) *ChallengeService {
	return &ChallengeService{repo: repo, subs: subs, score: score, achieve: achieve}
}

// ChallengeView 挑战详情：落库字段加推导出来的窗口状态
type ChallengeView struct {
	model.Challenge
	State            model.ChallengeState `json:"state"`
	RemainingSeconds int64                `json:"remaining_seconds"`
	Ingredients      []string             `json:"ingredients"`
	Participants     int64                `json:"participants"`
	Submissions      int64                `json:"submissions"`
}

func (s *ChallengeService) Create(ctx context.Context, title, theme string, ingredients []string, startAt, endAt time.Time) (*model.Challenge, error) {
	if title == "" || theme == "" {
		return nil, errors.New("challenge title and theme required")
	}
	if !startAt.Before(endAt) {
		return nil, errors.New("challenge start must be before end")
	}

	raw, err := json.Marshal(ingredients)
	if err != nil {
		return nil, err
	}
	ch := &model.Challenge{
		Title:               title,
		Theme:               theme,
		RequiredIngredients: string(raw),
		StartAt:             startAt,
		EndAt:               endAt,
	}
	if err = s.repo.Create(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// Current 当前挑战视图，窗口状态按读取时刻现算
func (s *ChallengeService) Current(ctx context.Context, now time.Time) (*ChallengeView, error) {
	ch, err := s.repo.Current(ctx, now)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, ch, now)
}

func (s *ChallengeService) Get(ctx context.Context, id uint64, now time.Time) (*ChallengeView, error) {
	ch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, ch, now)
}

func (s *ChallengeService) view(ctx context.Context, ch *model.Challenge, now time.Time) (*ChallengeView, error) {
	v := &ChallengeView{
		Challenge:        *ch,
		State:            ChallengeStateAt(ch, now),
		RemainingSeconds: int64(ChallengeRemaining(ch, now) / time.Second),
	}
	if ch.RequiredIngredients != "" {
		_ = json.Unmarshal([]byte(ch.RequiredIngredients), &v.Ingredients)
	}

	var err error
	if v.Participants, err = s.repo.CountParticipants(ctx, ch.ID); err != nil {
		return nil, err
	}
	if v.Submissions, err = s.repo.CountSubmissions(ctx, ch.ID); err != nil {
		return nil, err
	}
	return v, nil
}

// SettleEnded 结算所有已结束未结算的挑战：点赞最高的投稿夺冠，
// 给作者记一条 challenge_won 流水。幂等键取挑战ID，重复跑不会重复加分。
// 返回本轮结算的挑战数。
func (s *ChallengeService) SettleEnded(ctx context.Context, now time.Time) (int, error) {
	ended, err := s.repo.ListUnsettledEnded(ctx, now)
	if err != nil {
		return 0, err
	}

	settled := 0
	for i := range ended {
		ch := ended[i]
		top, err := s.subs.TopByChallenge(ctx, ch.ID)
		if err != nil && !errors.Is(err, model.ErrSubmissionNotFound) {
			return settled, err
		}

		var winnerID uint64
		if top != nil {
			winnerID = top.ID
			src := strconv.FormatUint(ch.ID, 10)
			if _, err = s.score.Record(ctx, top.AuthorID, model.EventChallengeWon, src); err != nil && !errors.Is(err, model.ErrDuplicateEvent) {
				return settled, err
			}
		}
		if err = s.repo.MarkSettled(ctx, ch.ID, winnerID); err != nil {
			return settled, err
		}
		if top != nil {
			_, _ = s.achieve.Evaluate(ctx, top.AuthorID)
		}
		settled++
	}
	return settled, nil
}
