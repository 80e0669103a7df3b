package model

import "time"

type User struct {
	ID          uint64 `gorm:"primaryKey"`
	Username    string `gorm:"uniqueIndex;size:32;not null"`
	Password    string `gorm:"size:255;not null"`
	Email       string `gorm:"uniqueIndex;size:64;not null"`
	DisplayName string `gorm:"size:64"`
	Bio         string `gorm:"size:255"`
	AvatarURL   string `gorm:"size:255"`
	// TotalScore 是冗余计数，真实值以 score_events 求和为准，由对账任务兜底
	TotalScore int64 `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ActivitySnapshot 成就判定用的用户活动快照
type ActivitySnapshot struct {
	Submissions   int64
	LikesReceived int64
	GroupsCreated int64
	ChallengeWins int64
}
