package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sizzle_Season/internal/model"
	"Sizzle_Season/internal/service"
)

func TestScoreRecordAndTotal(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.score.Record(ctx, 1, model.EventDishSubmitted, "sub-1")
	require.NoError(t, err)
	_, err = e.score.Record(ctx, 1, model.EventLikeReceived, "10:2")
	require.NoError(t, err)

	total, err := e.score.TotalScore(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(55), total)
}

func TestScoreRecordDuplicateSource(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.score.Record(ctx, 1, model.EventDishSubmitted, "sub-1")
	require.NoError(t, err)

	// 同样的 (user, kind, source) 第二次必须拒绝且不加分
	_, err = e.score.Record(ctx, 1, model.EventDishSubmitted, "sub-1")
	assert.ErrorIs(t, err, model.ErrDuplicateEvent)

	total, err := e.score.TotalScore(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
}

func TestScoreRecordUnknownKind(t *testing.T) {
	e := newEnv()

	_, err := e.score.Record(context.Background(), 1, model.EventKind("recipe_printed"), "x")
	assert.ErrorIs(t, err, model.ErrInvalidEventKind)
}

func TestScoreRecordRejectsEmptySource(t *testing.T) {
	e := newEnv()

	_, err := e.score.Record(context.Background(), 1, model.EventDishSubmitted, "")
	assert.Error(t, err)
	_, err = e.score.Record(context.Background(), 0, model.EventDishSubmitted, "sub-1")
	assert.Error(t, err)
}

func TestScoreHistoryNewestFirst(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.score.Record(ctx, 1, model.EventDishSubmitted, "sub-1")
	require.NoError(t, err)
	_, err = e.score.Record(ctx, 1, model.EventDishSubmitted, "sub-2")
	require.NoError(t, err)

	list, err := e.score.History(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "sub-2", list[0].SourceID)
	assert.Equal(t, "sub-1", list[1].SourceID)
}

func TestDailyCheckInOncePerDay(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	day1 := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	ev, fresh, err := e.score.DailyCheckIn(ctx, 1, day1)
	require.NoError(t, err)
	require.True(t, fresh)
	assert.Equal(t, int64(10), ev.Points)

	// 同一天再签不加分也不报错
	_, fresh, err = e.score.DailyCheckIn(ctx, 1, day1.Add(5*time.Hour))
	require.NoError(t, err)
	assert.False(t, fresh)

	// 第二天恢复
	_, fresh, err = e.score.DailyCheckIn(ctx, 1, day1.Add(24*time.Hour))
	require.NoError(t, err)
	assert.True(t, fresh)

	total, err := e.score.TotalScore(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), total)
}

func TestDailyCheckInDisabled(t *testing.T) {
	e := newEnv()
	score := service.NewScoreService(e.scoreRepo, nil, testPolicy(), false)

	ev, fresh, err := score.DailyCheckIn(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Nil(t, ev)
}
