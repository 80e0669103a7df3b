package model

import "time"

// ChallengeState 由时间窗推导，不落库，状态只会单向前进
type ChallengeState string

const (
	ChallengeUpcoming ChallengeState = "upcoming"
	ChallengeActive   ChallengeState = "active"
	ChallengeEnded    ChallengeState = "ended"
)

type Challenge struct {
	ID    uint64 `gorm:"primaryKey"`
	Title string `gorm:"size:128;not null"`
	Theme string `gorm:"size:64;not null"`
	// RequiredIngredients JSON 字符串数组
	RequiredIngredients string    `gorm:"type:json"`
	StartAt             time.Time `gorm:"not null;index"`
	EndAt               time.Time `gorm:"not null;index"`
	// 结算结果：冠军投稿；Settled 防止重复结算
	WinnerSubmissionID uint64 `gorm:"default:0"`
	Settled            bool   `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
