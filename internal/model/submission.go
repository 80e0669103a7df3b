package model

import "time"

type Submission struct {
	ID          uint64    `gorm:"primaryKey"`
	ChallengeID uint64    `gorm:"not null;index:idx_challenge_time,priority:1"`
	AuthorID    uint64    `gorm:"not null;index"`
	Title       string    `gorm:"size:128;not null"`
	Description string    `gorm:"type:text"`
	ImageURL    string    `gorm:"size:255"`
	LikeCount   int64     `gorm:"not null;default:0"`
	CommentCnt  int64     `gorm:"not null;default:0;column:comment_count"`
	CreatedAt   time.Time `gorm:"index:idx_challenge_time,priority:2,sort:desc"`
	UpdatedAt   time.Time
}

// SubmissionLike 点赞去重表，(user_id, submission_id) 唯一
type SubmissionLike struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	UserID       uint64 `gorm:"not null;uniqueIndex:uk_user_submission"`
	SubmissionID uint64 `gorm:"not null;index;uniqueIndex:uk_user_submission"`
	CreatedAt    time.Time
}

func (SubmissionLike) TableName() string { return "submission_likes" }

type Comment struct {
	ID           uint64 `gorm:"primaryKey"`
	SubmissionID uint64 `gorm:"not null;index"`
	AuthorID     uint64 `gorm:"not null;index"`
	Body         string `gorm:"type:text;not null"`
	CreatedAt    time.Time
}
