package memory

import (
	"context"
	"sort"
	"time"

	"Sizzle_Season/internal/model"
)

// GroupRepository service.GroupRepo 的内存实现
// 容量检查和插入在同一把锁内完成
type GroupRepository struct {
	s *Store
}

func NewGroupRepository(s *Store) *GroupRepository {
	return &GroupRepository{s: s}
}

func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = s.nextIDLocked()
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	s.groups[g.ID] = &cp
	// 创建者以 owner 身份入组
	s.members[g.ID] = map[uint64]int{g.CreatorID: 1}
	return nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint64) (*model.Group, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, model.ErrGroupNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *GroupRepository) Join(ctx context.Context, groupID, userID uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return model.ErrGroupNotFound
	}
	mem := s.members[groupID]
	if _, in := mem[userID]; in {
		return model.ErrAlreadyMember
	}
	if len(mem) >= g.MaxMembers {
		return model.ErrGroupFull
	}
	mem[userID] = 0
	return nil
}

func (r *GroupRepository) Leave(ctx context.Context, groupID, userID uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	mem := s.members[groupID]
	if _, in := mem[userID]; !in {
		return model.ErrNotAMember
	}
	delete(mem, userID)
	return nil
}

func (r *GroupRepository) List(ctx context.Context, offset, limit int) ([]model.GroupWithCount, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]model.GroupWithCount, 0, len(s.groups))
	for id, g := range s.groups {
		all = append(all, model.GroupWithCount{Group: *g, MemberCount: int64(len(s.members[id]))})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *GroupRepository) MemberCount(ctx context.Context, groupID uint64) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.members[groupID])), nil
}
