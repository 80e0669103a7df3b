package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"Sizzle_Season/internal/model"
	"Sizzle_Season/internal/repository/memory"
	"Sizzle_Season/internal/service"
)

func testPolicy() map[model.EventKind]int64 {
	return map[model.EventKind]int64{
		model.EventDishSubmitted:   50,
		model.EventLikeReceived:    5,
		model.EventGroupCreated:    25,
		model.EventChallengeWon:    200,
		model.EventDailyEngagement: 10,
	}
}

// env 全套服务跑在内存仓储上
type env struct {
	store      *memory.Store
	scoreRepo  *memory.ScoreEventRepository
	achRepo    *memory.AchievementRepository
	groupRepo  *memory.GroupRepository
	subRepo    *memory.SubmissionRepository
	chRepo     *memory.ChallengeRepository
	score      *service.ScoreService
	achieve    *service.AchievementService
	groups     *service.GroupService
	engage     *service.EngagementService
	challenges *service.ChallengeService
}

func newEnv() *env {
	store := memory.NewStore()
	e := &env{
		store:     store,
		scoreRepo: memory.NewScoreEventRepository(store),
		achRepo:   memory.NewAchievementRepository(store),
		groupRepo: memory.NewGroupRepository(store),
		subRepo:   memory.NewSubmissionRepository(store),
		chRepo:    memory.NewChallengeRepository(store),
	}
	e.score = service.NewScoreService(e.scoreRepo, nil, testPolicy(), true)
	e.achieve = service.NewAchievementService(e.achRepo)
	e.groups = service.NewGroupService(e.groupRepo, e.score, e.achieve)
	e.engage = service.NewEngagementService(e.subRepo, e.chRepo, e.score, e.achieve, nil, nil)
	e.challenges = service.NewChallengeService(e.chRepo, e.subRepo, e.score, e.achieve)
	return e
}

// activeChallenge 窗口覆盖当前时刻的挑战
func (e *env) activeChallenge(t *testing.T) *model.Challenge {
	t.Helper()
	ch := &model.Challenge{
		Title:   "Fusion Friday",
		Theme:   "fusion",
		StartAt: time.Now().Add(-time.Hour),
		EndAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, e.chRepo.Create(context.Background(), ch))
	return ch
}

// countEvents 该用户指定类型的流水条数
func (e *env) countEvents(t *testing.T, userID uint64, kind model.EventKind) int {
	t.Helper()
	list, err := e.scoreRepo.ListByUser(context.Background(), userID, 100)
	require.NoError(t, err)
	n := 0
	for _, ev := range list {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
