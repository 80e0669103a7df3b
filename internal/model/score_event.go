package model

import "time"

// EventKind 积分事件类型，分值由配置的策略表决定
type EventKind string

const (
	EventDishSubmitted   EventKind = "dish_submitted"
	EventLikeReceived    EventKind = "like_received"
	EventGroupCreated    EventKind = "group_created"
	EventChallengeWon    EventKind = "challenge_won"
	EventDailyEngagement EventKind = "daily_engagement"
)

// ScoreEvent 积分流水，只追加不修改
// (user_id, kind, source_id) 唯一，作为外部重试的幂等键
type ScoreEvent struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index;uniqueIndex:uk_user_kind_source,priority:1"`
	Kind      EventKind `gorm:"size:32;not null;uniqueIndex:uk_user_kind_source,priority:2"`
	SourceID  string    `gorm:"size:64;not null;uniqueIndex:uk_user_kind_source,priority:3"`
	Points    int64     `gorm:"not null"`
	CreatedAt time.Time
}

func (ScoreEvent) TableName() string { return "score_events" }

// ScoreOutbox 积分事件投递表，交给 relayer 异步推 Kafka
type ScoreOutbox struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null"`
	Kind      EventKind `gorm:"size:32;not null"`
	Payload   string    `gorm:"type:json;not null"`
	Status    int8      `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ScoreOutbox) TableName() string { return "score_outbox" }
