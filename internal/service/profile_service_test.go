package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sizzle_Season/internal/model"
	"Sizzle_Season/internal/repository/memory"
	"Sizzle_Season/internal/service"
)

func TestProfileGet(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	users := memory.NewUserRepository(e.store)
	require.NoError(t, users.Create(ctx, &model.User{
		Username: "gina", Email: "gina@example.com", Password: "x", DisplayName: "Gina",
	}))
	u, err := users.FindByUsername(ctx, "gina")
	require.NoError(t, err)

	profiles := service.NewProfileService(users, e.score, e.achieve, e.achRepo, e.subRepo)

	ch := e.activeChallenge(t)
	sub, err := e.engage.Submit(ctx, u.ID, ch.ID, "Signature Dish", "", "")
	require.NoError(t, err)
	_, err = e.engage.Like(ctx, u.ID+1, sub.ID)
	require.NoError(t, err)
	_, err = e.groups.Create(ctx, u.ID, "Gina's Kitchen", "", 8, false)
	require.NoError(t, err)

	view, err := profiles.Get(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, "gina", view.Username)
	// 50 投稿 + 5 被赞 + 25 建组
	assert.Equal(t, int64(80), view.TotalScore)
	assert.Equal(t, "Novice Chef", view.Rank.Tier.Name)
	require.NotNil(t, view.Rank.NextTier)
	assert.Equal(t, "Rising Star", view.Rank.NextTier.Name)

	assert.Equal(t, int64(1), view.Stats.Submissions)
	assert.Equal(t, int64(1), view.Stats.LikesReceived)
	assert.Equal(t, int64(1), view.Stats.GroupsCreated)
	assert.Equal(t, int64(0), view.Stats.ChallengeWins)

	require.Len(t, view.Achievements, 5)
	unlockedTitles := map[string]bool{}
	for _, st := range view.Achievements {
		if st.Unlocked {
			unlockedTitles[st.Title] = true
		}
	}
	assert.True(t, unlockedTitles["First Dish"])
	assert.True(t, unlockedTitles["Group Leader"])

	require.Len(t, view.Recent, 1)
	assert.Equal(t, "Signature Dish", view.Recent[0].Title)
}

func TestProfileGetUnknownUser(t *testing.T) {
	e := newEnv()
	users := memory.NewUserRepository(e.store)
	profiles := service.NewProfileService(users, e.score, e.achieve, e.achRepo, e.subRepo)

	_, err := profiles.Get(context.Background(), 404)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
