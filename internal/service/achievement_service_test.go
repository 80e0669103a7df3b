package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateUnlocksFirstDish(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	ch := e.activeChallenge(t)

	// 投稿动作里已经顺手评估过一次
	_, err := e.engage.Submit(ctx, 1, ch.ID, "First Try", "", "")
	require.NoError(t, err)

	list, err := e.achieve.ListWithStatus(ctx, 1)
	require.NoError(t, err)

	var firstDish, groupLeader bool
	for _, st := range list {
		switch st.Title {
		case "First Dish":
			firstDish = st.Unlocked
			assert.NotNil(t, st.UnlockedAt)
		case "Group Leader":
			groupLeader = st.Unlocked
		}
	}
	assert.True(t, firstDish)
	assert.False(t, groupLeader)
}

func TestEvaluateIdempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	ch := e.activeChallenge(t)

	sub, err := e.engage.Submit(ctx, 1, ch.ID, "Once", "", "")
	require.NoError(t, err)
	_ = sub

	list, err := e.achieve.ListWithStatus(ctx, 1)
	require.NoError(t, err)
	var firstAt *string
	for _, st := range list {
		if st.Title == "First Dish" {
			require.NotNil(t, st.UnlockedAt)
			s := st.UnlockedAt.String()
			firstAt = &s
		}
	}
	require.NotNil(t, firstAt)

	// 再评估不产生新解锁，时间戳不动
	unlocked, err := e.achieve.Evaluate(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	list, err = e.achieve.ListWithStatus(ctx, 1)
	require.NoError(t, err)
	for _, st := range list {
		if st.Title == "First Dish" {
			assert.Equal(t, *firstAt, st.UnlockedAt.String())
		}
	}
}

func TestEvaluateLikesThresholds(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	ch := e.activeChallenge(t)

	sub, err := e.engage.Submit(ctx, 1, ch.ID, "Crowd Pleaser", "", "")
	require.NoError(t, err)

	// 49 个赞还差一个
	for i := 0; i < 49; i++ {
		_, err := e.engage.Like(ctx, uint64(100+i), sub.ID)
		require.NoError(t, err)
	}
	unlocked, err := e.achieve.Evaluate(ctx, 1)
	require.NoError(t, err)
	for _, a := range unlocked {
		assert.NotEqual(t, "Social Butterfly", a.Title)
	}

	// 第 50 个赞解锁 Social Butterfly（Like 内部会评估）
	_, err = e.engage.Like(ctx, 999, sub.ID)
	require.NoError(t, err)

	list, err := e.achieve.ListWithStatus(ctx, 1)
	require.NoError(t, err)
	var butterfly, star bool
	for _, st := range list {
		switch st.Title {
		case "Social Butterfly":
			butterfly = st.Unlocked
		case "Community Star":
			star = st.Unlocked
		}
	}
	assert.True(t, butterfly)
	// 100 赞的成就还没到
	assert.False(t, star)
}

func TestEvaluateGroupLeader(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.groups.Create(ctx, 7, "Leaders", "", 8, false)
	require.NoError(t, err)

	// 建组时已评估解锁
	list, err := e.achieve.ListWithStatus(ctx, 7)
	require.NoError(t, err)
	for _, st := range list {
		if st.Title == "Group Leader" {
			assert.True(t, st.Unlocked)
		}
	}

	// 再评估不会重复解锁
	unlocked, err := e.achieve.Evaluate(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestListWithStatusCoversAll(t *testing.T) {
	e := newEnv()

	list, err := e.achieve.ListWithStatus(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for _, st := range list {
		assert.False(t, st.Unlocked, fmt.Sprintf("%s should start locked", st.Title))
		assert.Nil(t, st.UnlockedAt)
	}
}
