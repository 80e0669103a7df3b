package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Sizzle_Season/internal/model"
)

type GroupRepository struct {
	DB *gorm.DB
}

// Create 建组并让创建者以 owner 身份入组，单事务
func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		return tx.Create(&model.GroupMember{
			GroupID: g.ID,
			UserID:  g.CreatorID,
			Role:    1,
		}).Error
	})
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint64) (*model.Group, error) {
	var g model.Group
	err := r.DB.WithContext(ctx).First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrGroupNotFound
	}
	return &g, err
}

// Join 锁组行后查容量再插入，杜绝两个并发 join 同时看到有空位
func (r *GroupRepository) Join(ctx context.Context, groupID, userID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g model.Group
		// select for update 串行化同一组的并发入组
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&g, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrGroupNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&model.GroupMember{}).
			Where("group_id = ? AND user_id = ?", groupID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return model.ErrAlreadyMember
		}

		var members int64
		if err := tx.Model(&model.GroupMember{}).
			Where("group_id = ?", groupID).
			Count(&members).Error; err != nil {
			return err
		}
		if members >= int64(g.MaxMembers) {
			return model.ErrGroupFull
		}

		return tx.Create(&model.GroupMember{
			GroupID: groupID,
			UserID:  userID,
			Role:    0,
		}).Error
	})
}

// Leave 退组；创建者退出不解散组
func (r *GroupRepository) Leave(ctx context.Context, groupID, userID uint64) error {
	res := r.DB.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotAMember
	}
	return nil
}

func (r *GroupRepository) List(ctx context.Context, offset, limit int) ([]model.GroupWithCount, error) {
	var list []model.GroupWithCount
	err := r.DB.WithContext(ctx).Model(&model.Group{}).
		Select("`groups`.*, COUNT(group_members.id) AS member_count").
		Joins("LEFT JOIN group_members ON group_members.group_id = `groups`.id").
		Group("`groups`.id").
		Order("`groups`.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *GroupRepository) MemberCount(ctx context.Context, groupID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
