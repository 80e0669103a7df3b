package model

import "time"

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"type:text"`
	CreatorID   uint64 `gorm:"not null;index"`
	MaxMembers  int    `gorm:"not null"`
	IsPrivate   bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GroupMember struct {
	ID        uint64 `gorm:"primaryKey"`
	GroupID   uint64 `gorm:"not null;index;uniqueIndex:uk_group_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_group_user"`
	Role      int    `gorm:"not null;default:0"` // 0=member, 1=owner
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupWithCount 列表页返回的分组信息，带成员数
type GroupWithCount struct {
	Group
	MemberCount int64 `json:"member_count"`
}
