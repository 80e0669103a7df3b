package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sizzle_Season/internal/model"
)

func TestChallengeCreateValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	now := time.Now()

	_, err := e.challenges.Create(ctx, "", "bbq", nil, now, now.Add(time.Hour))
	assert.Error(t, err)

	_, err = e.challenges.Create(ctx, "Backwards", "bbq", nil, now.Add(time.Hour), now)
	assert.Error(t, err)

	ch, err := e.challenges.Create(ctx, "Fusion Week", "fusion", []string{"kimchi", "pasta"}, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.NotZero(t, ch.ID)
}

func TestChallengeViewState(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	now := time.Now()

	ch, err := e.challenges.Create(ctx, "Fusion Week", "fusion", []string{"kimchi"}, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	_, err = e.engage.Submit(ctx, 1, ch.ID, "Entry", "", "")
	require.NoError(t, err)
	_, err = e.engage.Submit(ctx, 1, ch.ID, "Second Entry", "", "")
	require.NoError(t, err)

	view, err := e.challenges.Get(ctx, ch.ID, now)
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeActive, view.State)
	assert.Greater(t, view.RemainingSeconds, int64(0))
	assert.Equal(t, []string{"kimchi"}, view.Ingredients)
	assert.Equal(t, int64(1), view.Participants)
	assert.Equal(t, int64(2), view.Submissions)

	// 结束后剩余时间归零
	view, err = e.challenges.Get(ctx, ch.ID, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeEnded, view.State)
	assert.Equal(t, int64(0), view.RemainingSeconds)
}

func TestChallengeCurrentPrefersActive(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	now := time.Now()

	_, err := e.challenges.Create(ctx, "Future", "bbq", nil, now.Add(24*time.Hour), now.Add(48*time.Hour))
	require.NoError(t, err)
	active, err := e.challenges.Create(ctx, "Now", "fusion", nil, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	view, err := e.challenges.Current(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, active.ID, view.ID)
	assert.Equal(t, model.ChallengeActive, view.State)
}

func TestSettleEndedPicksMostLiked(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	now := time.Now()

	ch, err := e.challenges.Create(ctx, "Fusion Week", "fusion", nil, now.Add(-2*time.Hour), now.Add(time.Minute))
	require.NoError(t, err)

	first, err := e.engage.Submit(ctx, 1, ch.ID, "Early Bird", "", "")
	require.NoError(t, err)
	second, err := e.engage.Submit(ctx, 2, ch.ID, "Crowd Favorite", "", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = e.engage.Like(ctx, uint64(100+i), second.ID)
		require.NoError(t, err)
	}
	_, err = e.engage.Like(ctx, 100, first.ID)
	require.NoError(t, err)

	// 窗口结束后结算
	settleAt := now.Add(time.Hour)
	n, err := e.challenges.SettleEnded(ctx, settleAt)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := e.chRepo.FindByID(ctx, ch.ID)
	require.NoError(t, err)
	assert.True(t, got.Settled)
	assert.Equal(t, second.ID, got.WinnerSubmissionID)

	// 冠军拿到 challenge_won 流水
	assert.Equal(t, 1, e.countEvents(t, 2, model.EventChallengeWon))
	assert.Equal(t, 0, e.countEvents(t, 1, model.EventChallengeWon))

	// 重复结算不再生效也不重复加分
	n, err = e.challenges.SettleEnded(ctx, settleAt)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, e.countEvents(t, 2, model.EventChallengeWon))
}

func TestSettleEndedTieGoesToEarlier(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	now := time.Now()

	ch, err := e.challenges.Create(ctx, "Tie Break", "bbq", nil, now.Add(-2*time.Hour), now.Add(time.Minute))
	require.NoError(t, err)

	first, err := e.engage.Submit(ctx, 1, ch.ID, "First In", "", "")
	require.NoError(t, err)
	second, err := e.engage.Submit(ctx, 2, ch.ID, "Second In", "", "")
	require.NoError(t, err)

	_, err = e.engage.Like(ctx, 100, first.ID)
	require.NoError(t, err)
	_, err = e.engage.Like(ctx, 100, second.ID)
	require.NoError(t, err)

	_, err = e.challenges.SettleEnded(ctx, now.Add(time.Hour))
	require.NoError(t, err)

	got, err := e.chRepo.FindByID(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.WinnerSubmissionID)
}

func TestSettleEndedNoSubmissions(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	now := time.Now()

	ch, err := e.challenges.Create(ctx, "Ghost Town", "soup", nil, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)

	n, err := e.challenges.SettleEnded(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := e.chRepo.FindByID(ctx, ch.ID)
	require.NoError(t, err)
	assert.True(t, got.Settled)
	assert.Zero(t, got.WinnerSubmissionID)
}
