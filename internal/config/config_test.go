package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sizzle_Season/internal/model"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "b")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Contains(t, cfg.MySQLDSN(), "sizzle:pw@tcp(127.0.0.1:3306)/sizzle_season")
	assert.True(t, cfg.DailyCheckInEnabled)
	assert.False(t, cfg.KafkaEnabled)
}

func TestScorePolicyTable(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POINTS_DISH_SUBMITTED", "70")

	cfg, err := Load()
	require.NoError(t, err)

	policy := cfg.ScorePolicy()
	assert.Equal(t, int64(70), policy[model.EventDishSubmitted])
	assert.Equal(t, int64(5), policy[model.EventLikeReceived])
	assert.Equal(t, int64(25), policy[model.EventGroupCreated])
	assert.Equal(t, int64(200), policy[model.EventChallengeWon])
	assert.Equal(t, int64(10), policy[model.EventDailyEngagement])

	// 评论不计分：策略表里没有评论项
	assert.Len(t, policy, 5)
}

func TestValidateRejectsNonPositivePoints(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POINTS_LIKE_RECEIVED", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestKafkaBrokersSplit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092 ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.KafkaBrokers())
}
