package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"Sizzle_Season/internal/model"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func (r *ChallengeRepository) Create(ctx context.Context, ch *model.Challenge) error {
	return r.DB.WithContext(ctx).Create(ch).Error
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id uint64) (*model.Challenge, error) {
	var ch model.Challenge
	err := r.DB.WithContext(ctx).First(&ch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrChallengeNotFound
	}
	return &ch, err
}

// Current 进行中的挑战优先；没有就取最近一个未开始的
func (r *ChallengeRepository) Current(ctx context.Context, now time.Time) (*model.Challenge, error) {
	var ch model.Challenge
	err := r.DB.WithContext(ctx).
		Where("start_at <= ? AND end_at > ?", now, now).
		Order("start_at DESC").
		First(&ch).Error
	if err == nil {
		return &ch, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.DB.WithContext(ctx).
		Where("start_at > ?", now).
		Order("start_at ASC").
		First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrChallengeNotFound
	}
	return &ch, err
}

func (r *ChallengeRepository) ListUnsettledEnded(ctx context.Context, now time.Time) ([]model.Challenge, error) {
	var list []model.Challenge
	err := r.DB.WithContext(ctx).
		Where("end_at <= ? AND settled = false", now).
		Order("end_at ASC").
		Find(&list).Error
	return list, err
}

func (r *ChallengeRepository) MarkSettled(ctx context.Context, id, winnerSubmissionID uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Challenge{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"settled":              true,
			"winner_submission_id": winnerSubmissionID,
		}).Error
}

// CountParticipants 去重作者数
func (r *ChallengeRepository) CountParticipants(ctx context.Context, challengeID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Where("challenge_id = ?", challengeID).
		Distinct("author_id").
		Count(&count).Error
	return count, err
}

func (r *ChallengeRepository) CountSubmissions(ctx context.Context, challengeID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Where("challenge_id = ?", challengeID).
		Count(&count).Error
	return count, err
}
