package model

import "time"

// CriteriaType 成就判定维度，对应 ActivitySnapshot 的四个计数
type CriteriaType string

const (
	CriteriaSubmissions   CriteriaType = "submissions"
	CriteriaLikesReceived CriteriaType = "likes_received"
	CriteriaGroupsCreated CriteriaType = "groups_created"
	CriteriaChallengeWins CriteriaType = "challenge_wins"
)

type Achievement struct {
	ID            uint64       `gorm:"primaryKey"`
	Title         string       `gorm:"uniqueIndex;size:64;not null"`
	Description   string       `gorm:"size:255"`
	Icon          string       `gorm:"size:16"`
	CriteriaType  CriteriaType `gorm:"size:32;not null"`
	CriteriaValue int64        `gorm:"not null"`
	CreatedAt     time.Time
}

// UserAchievement 解锁记录，(user_id, achievement_id) 唯一
// 只插入不更新：解锁时间一旦写入就不再变
type UserAchievement struct {
	ID            uint64    `gorm:"primaryKey"`
	UserID        uint64    `gorm:"not null;index;uniqueIndex:uk_user_achievement"`
	AchievementID uint64    `gorm:"not null;uniqueIndex:uk_user_achievement"`
	UnlockedAt    time.Time `gorm:"not null"`
}

func (UserAchievement) TableName() string { return "user_achievements" }

// SeedAchievements 默认成就集，启动时幂等写入
func SeedAchievements() []Achievement {
	return []Achievement{
		{Title: "First Dish", Description: "Submit your first cooking challenge", Icon: "🍽️", CriteriaType: CriteriaSubmissions, CriteriaValue: 1},
		{Title: "Social Butterfly", Description: "Receive 50 likes on your submissions", Icon: "🦋", CriteriaType: CriteriaLikesReceived, CriteriaValue: 50},
		{Title: "Group Leader", Description: "Create your first dinner party group", Icon: "👥", CriteriaType: CriteriaGroupsCreated, CriteriaValue: 1},
		{Title: "Fusion Master", Description: "Win a fusion cooking challenge", Icon: "🏆", CriteriaType: CriteriaChallengeWins, CriteriaValue: 1},
		{Title: "Community Star", Description: "Receive 100 likes total", Icon: "⭐", CriteriaType: CriteriaLikesReceived, CriteriaValue: 100},
	}
}
