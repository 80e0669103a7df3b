package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Sizzle_Season/internal/model"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func (r *AchievementRepository) ListAll(ctx context.Context) ([]model.Achievement, error) {
	var list []model.Achievement
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *AchievementRepository) ListUnlocked(ctx context.Context, userID uint64) ([]model.UserAchievement, error) {
	var list []model.UserAchievement
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&list).Error
	return list, err
}

// Unlock 幂等解锁：唯一索引 (user_id, achievement_id) 命中时 DoNothing
// 返回 true 表示本次是首解，unlocked_at 只在首解时写入
func (r *AchievementRepository) Unlock(ctx context.Context, userID, achievementID uint64, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Snapshot 四个判定维度各查一次，likes 用投稿计数求和
func (r *AchievementRepository) Snapshot(ctx context.Context, userID uint64) (model.ActivitySnapshot, error) {
	var s model.ActivitySnapshot
	db := r.DB.WithContext(ctx)

	if err := db.Model(&model.Submission{}).
		Where("author_id = ?", userID).
		Count(&s.Submissions).Error; err != nil {
		return s, err
	}
	if err := db.Model(&model.Submission{}).
		Where("author_id = ?", userID).
		Select("COALESCE(SUM(like_count), 0)").
		Scan(&s.LikesReceived).Error; err != nil {
		return s, err
	}
	if err := db.Model(&model.Group{}).
		Where("creator_id = ?", userID).
		Count(&s.GroupsCreated).Error; err != nil {
		return s, err
	}
	if err := db.Model(&model.ScoreEvent{}).
		Where("user_id = ? AND kind = ?", userID, model.EventChallengeWon).
		Count(&s.ChallengeWins).Error; err != nil {
		return s, err
	}
	return s, nil
}
