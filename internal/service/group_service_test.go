package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sizzle_Season/internal/model"
)

func TestGroupCreateAwardsCreator(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	g, err := e.groups.Create(ctx, 1, "Taco Tuesday", "weekly dinner party", 8, false)
	require.NoError(t, err)
	require.NotZero(t, g.ID)

	// 创建者自动入组
	cnt, err := e.groupRepo.MemberCount(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	total, err := e.score.TotalScore(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
}

func TestGroupCreateValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.groups.Create(ctx, 1, "", "", 8, false)
	assert.Error(t, err)

	_, err = e.groups.Create(ctx, 1, "Zero Cap", "", 0, false)
	assert.ErrorIs(t, err, model.ErrInvalidCapacity)
}

func TestGroupJoinAndLeave(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	g, err := e.groups.Create(ctx, 1, "Supper Club", "", 8, false)
	require.NoError(t, err)

	_, err = e.groups.Join(ctx, g.ID, 2)
	require.NoError(t, err)

	// 重复入组
	_, err = e.groups.Join(ctx, g.ID, 2)
	assert.ErrorIs(t, err, model.ErrAlreadyMember)

	require.NoError(t, e.groups.Leave(ctx, g.ID, 2))

	// 不在组里再退
	assert.ErrorIs(t, e.groups.Leave(ctx, g.ID, 2), model.ErrNotAMember)

	// 不存在的组
	_, err = e.groups.Join(ctx, 9999, 2)
	assert.ErrorIs(t, err, model.ErrGroupNotFound)
}

func TestGroupJoinFull(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	// 容量 1，创建者把唯一名额占满
	g, err := e.groups.Create(ctx, 1, "Chef's Table", "", 1, false)
	require.NoError(t, err)

	_, err = e.groups.Join(ctx, g.ID, 2)
	assert.ErrorIs(t, err, model.ErrGroupFull)
}

func TestGroupCreatorLeaveKeepsGroup(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	g, err := e.groups.Create(ctx, 1, "Orphans Welcome", "", 8, false)
	require.NoError(t, err)
	_, err = e.groups.Join(ctx, g.ID, 2)
	require.NoError(t, err)

	// 创建者退出后组继续存在
	require.NoError(t, e.groups.Leave(ctx, g.ID, 1))
	got, err := e.groupRepo.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)

	cnt, err := e.groupRepo.MemberCount(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestGroupConcurrentJoinsRespectCapacity(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	// 容量 2：创建者占一个，剩一个名额给 8 个并发抢
	g, err := e.groups.Create(ctx, 1, "Last Seat", "", 2, false)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(userID uint64) {
			defer wg.Done()
			_, err := e.groups.Join(ctx, g.ID, userID)
			results <- err
		}(uint64(100 + i))
	}
	wg.Wait()
	close(results)

	success := 0
	for err := range results {
		if err == nil {
			success++
		} else {
			assert.ErrorIs(t, err, model.ErrGroupFull)
		}
	}
	assert.Equal(t, 1, success)

	cnt, err := e.groupRepo.MemberCount(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)
}

func TestGroupList(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := e.groups.Create(ctx, 1, name, "", 8, false)
		require.NoError(t, err)
	}

	list, err := e.groups.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].MemberCount)

	list, err = e.groups.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
