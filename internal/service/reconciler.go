package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ScoreReconciler 对账任务：users.total_score 冗余列和流水求和比对修正
// 账本是唯一事实来源，冗余列只为列表页省一次聚合查询
type ScoreReconciler struct {
	repo      ReconcilerRepo
	batchSize int
	log       *logrus.Logger
}

func NewScoreReconciler(repo ReconcilerRepo, log *logrus.Logger) *ScoreReconciler {
	return &ScoreReconciler{
		repo:      repo,
		batchSize: 500,
		log:       log,
	}
}

// ReconcileOnce 扫全量用户分批对账，返回修正条数
func (r *ScoreReconciler) ReconcileOnce(ctx context.Context) (int, error) {
	fixed := 0
	var lastID uint64
	for {
		users, next, err := r.repo.ListUserScores(ctx, r.batchSize, lastID)
		if err != nil {
			return fixed, err
		}
		if len(users) == 0 {
			return fixed, nil
		}

		for _, u := range users {
			actual, err := r.repo.RealTotal(ctx, u.ID)
			if err != nil {
				r.log.WithError(err).WithField("user_id", u.ID).Warn("reconcile sum failed")
				continue
			}
			if actual == u.TotalScore {
				continue
			}
			if err = r.repo.FixTotal(ctx, u.ID, actual); err != nil {
				r.log.WithError(err).WithField("user_id", u.ID).Warn("reconcile fix failed")
				continue
			}
			r.log.WithFields(logrus.Fields{
				"user_id": u.ID,
				"cached":  u.TotalScore,
				"actual":  actual,
			}).Info("total_score reconciled")
			fixed++
		}
		lastID = next
	}
}
