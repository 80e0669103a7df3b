// Package memory 提供全套仓储的内存实现，供测试和本地运行使用
// 所有不变量靠一把互斥锁保证，语义与 mysql 实现一致
package memory

import (
	"fmt"
	"sync"
	"time"

	"Sizzle_Season/internal/model"
)

type Store struct {
	mu sync.Mutex

	users       map[uint64]*model.User
	events      []model.ScoreEvent
	eventKeys   map[string]struct{}
	outbox      []model.ScoreOutbox
	groups      map[uint64]*model.Group
	members     map[uint64]map[uint64]int // groupID -> userID -> role
	challenges  map[uint64]*model.Challenge
	submissions map[uint64]*model.Submission
	likes       map[string]struct{}
	comments    []model.Comment
	achievs     map[uint64]model.Achievement
	unlocks     map[string]time.Time // "userID:achievementID"

	nextID uint64
}

func NewStore() *Store {
	s := &Store{
		users:       make(map[uint64]*model.User),
		eventKeys:   make(map[string]struct{}),
		groups:      make(map[uint64]*model.Group),
		members:     make(map[uint64]map[uint64]int),
		challenges:  make(map[uint64]*model.Challenge),
		submissions: make(map[uint64]*model.Submission),
		likes:       make(map[string]struct{}),
		achievs:     make(map[uint64]model.Achievement),
		unlocks:     make(map[string]time.Time),
	}
	for _, a := range model.SeedAchievements() {
		s.nextID++
		a.ID = s.nextID
		s.achievs[a.ID] = a
	}
	return s
}

// 调用方必须已持锁
func (s *Store) nextIDLocked() uint64 {
	s.nextID++
	return s.nextID
}

func pairKey(a, b uint64) string {
	return fmt.Sprintf("%d:%d", a, b)
}
