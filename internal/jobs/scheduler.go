// Package jobs 定时任务：挑战结算和积分对账
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"Sizzle_Season/internal/service"
)

type Scheduler struct {
	cron       *cron.Cron
	challenges *service.ChallengeService
	reconciler *service.ScoreReconciler
	log        *logrus.Logger
}

func NewScheduler(challenges *service.ChallengeService, reconciler *service.ScoreReconciler, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		challenges: challenges,
		reconciler: reconciler,
		log:        log,
	}
}

// Register settleSpec 每隔几分钟扫一次到期挑战，reconcileSpec 每天低峰对账
func (s *Scheduler) Register(settleSpec, reconcileSpec string) error {
	if _, err := s.cron.AddFunc(settleSpec, s.settleEnded); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(reconcileSpec, s.reconcile); err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) settleEnded() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.challenges.SettleEnded(ctx, time.Now())
	if err != nil {
		s.log.WithError(err).Warn("challenge settle failed")
		return
	}
	if n > 0 {
		s.log.WithField("settled", n).Info("challenges settled")
	}
}

func (s *Scheduler) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fixed, err := s.reconciler.ReconcileOnce(ctx)
	if err != nil {
		s.log.WithError(err).Warn("score reconcile failed")
		return
	}
	s.log.WithField("fixed", fixed).Info("score reconcile done")
}
