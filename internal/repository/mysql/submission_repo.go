package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Sizzle_Season/internal/model"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint64) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrSubmissionNotFound
	}
	return &s, err
}

// Like 单事务：去重插点赞 + 计数自增，返回作者ID
// (user_id, submission_id) 唯一索引命中即重复点赞
func (r *SubmissionRepository) Like(ctx context.Context, userID, submissionID uint64) (uint64, error) {
	var authorID uint64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.Submission
		if err := tx.Select("id", "author_id").First(&s, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrSubmissionNotFound
			}
			return err
		}
		authorID = s.AuthorID

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "submission_id"}},
			DoNothing: true,
		}).Create(&model.SubmissionLike{UserID: userID, SubmissionID: submissionID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrDuplicateLike
		}

		return tx.Model(&model.Submission{}).
			Where("id = ?", submissionID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	return authorID, err
}

func (r *SubmissionRepository) IsLiked(ctx context.Context, userID, submissionID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SubmissionLike{}).
		Where("user_id = ? AND submission_id = ?", userID, submissionID).
		Count(&count).Error
	return count > 0, err
}

func (r *SubmissionRepository) AddComment(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Submission{}).
			Where("id = ?", c.SubmissionID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrSubmissionNotFound
		}
		return tx.Create(c).Error
	})
}

// ListByChallengeCursor 时间游标分页：先比时间，同一时间点用 id 打破并列
func (r *SubmissionRepository) ListByChallengeCursor(ctx context.Context, challengeID, lastID uint64, lastCreatedAt int64, limit int) ([]model.Submission, error) {
	var list []model.Submission
	q := r.DB.WithContext(ctx).Where("challenge_id = ?", challengeID)
	if lastCreatedAt > 0 {
		q = q.Where("(created_at < FROM_UNIXTIME(?) OR (created_at = FROM_UNIXTIME(?) AND id < ?))",
			lastCreatedAt, lastCreatedAt, lastID)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *SubmissionRepository) ListByAuthor(ctx context.Context, authorID uint64, limit int) ([]model.Submission, error) {
	var list []model.Submission
	err := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// TopByChallenge 点赞最多的投稿，平手取先发的
func (r *SubmissionRepository) TopByChallenge(ctx context.Context, challengeID uint64) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("like_count DESC, id ASC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrSubmissionNotFound
	}
	return &s, err
}
