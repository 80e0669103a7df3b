package mysql

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Sizzle_Season/internal/model"
	"Sizzle_Season/internal/service"
)

type ScoreEventRepository struct {
	DB *gorm.DB
}

// Record 单事务完成：幂等插流水 + 冗余总分自增 + 写 outbox
// 唯一索引 (user_id, kind, source_id) 命中时 DoNothing，RowsAffected=0 即重复
func (r *ScoreEventRepository) Record(ctx context.Context, ev *model.ScoreEvent) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "kind"}, {Name: "source_id"},
			},
			DoNothing: true,
		}).Create(ev)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrDuplicateEvent
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", ev.UserID).
			UpdateColumn("total_score", gorm.Expr("total_score + ?", ev.Points)).Error; err != nil {
			return err
		}

		return r.insertOutbox(tx, ev)
	})
}

func (r *ScoreEventRepository) SumPoints(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.ScoreEvent{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ScoreEventRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.ScoreEvent, error) {
	var list []model.ScoreEvent
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *ScoreEventRepository) insertOutbox(tx *gorm.DB, ev *model.ScoreEvent) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"user_id":    ev.UserID,
		"kind":       ev.Kind,
		"points":     ev.Points,
		"source_id":  ev.SourceID,
	})
	return tx.Create(&model.ScoreOutbox{
		UserID:  ev.UserID,
		Kind:    ev.Kind,
		Payload: string(payload),
		Status:  0,
	}).Error
}

type OutboxRepository struct {
	DB *gorm.DB
}

func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.ScoreOutbox, error) {
	var list []model.ScoreOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ScoreOutbox{}).
		Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ScoreOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

type ScoreReconcilerRepository struct {
	DB *gorm.DB
}

func (r *ScoreReconcilerRepository) ListUserScores(ctx context.Context, batchSize int, lastID uint64) ([]service.UserScore, uint64, error) {
	var list []service.UserScore
	if err := r.DB.WithContext(ctx).Model(&model.User{}).
		Select("id", "total_score").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

func (r *ScoreReconcilerRepository) RealTotal(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.ScoreEvent{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ScoreReconcilerRepository) FixTotal(ctx context.Context, userID uint64, total int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("total_score", total).Error
}
