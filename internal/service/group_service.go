package service

import (
	"context"
	"errors"
	"strconv"

	"Sizzle_Season/internal/model"
)

type GroupService struct {
	repo    GroupRepo
	score   *ScoreService
	achieve *AchievementService
}

func NewGroupService(repo GroupRepo, score *ScoreService, achieve *AchievementService) *GroupService {
	return &GroupService{repo: repo, score: score, achieve: achieve}
}

// Create 建组；创建者自动入组，成功后给创建者记 group_created 积分
func (s *GroupService) Create(ctx context.Context, creatorID uint64, name, desc string, maxMembers int, isPrivate bool) (*model.Group, error) {
	if name == "" {
		return nil, errors.New("group name required")
	}
	if maxMembers < 1 {
		return nil, model.ErrInvalidCapacity
	}

	group := &model.Group{
		Name:        name,
		Description: desc,
		CreatorID:   creatorID,
		MaxMembers:  maxMembers,
		IsPrivate:   isPrivate,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	// 幂等键取组ID，建组重试不会重复加分
	if _, err := s.score.Record(ctx, creatorID, model.EventGroupCreated, strconv.FormatUint(group.ID, 10)); err != nil && !errors.Is(err, model.ErrDuplicateEvent) {
		return nil, err
	}

	// 成就判定失败不影响建组
	_, _ = s.achieve.Evaluate(ctx, creatorID)
	return group, nil
}

// Join 入组；容量检查和插入由仓储在同一临界区内完成
func (s *GroupService) Join(ctx context.Context, groupID, userID uint64) (*model.Group, error) {
	if err := s.repo.Join(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, groupID)
}

// Leave 退组；创建者退出后组继续存在，所有权不转移
func (s *GroupService) Leave(ctx context.Context, groupID, userID uint64) error {
	return s.repo.Leave(ctx, groupID, userID)
}

func (s *GroupService) List(ctx context.Context, page, size int) ([]model.GroupWithCount, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.List(ctx, (page-1)*size, size)
}
