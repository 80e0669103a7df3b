package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"Sizzle_Season/internal/model"
	"Sizzle_Season/internal/pkg"
)

type Sender func(ctx context.Context, ob *model.ScoreOutbox) error

// OutboxRelayer 周期性把积分事件从 outbox 表投递出去
type OutboxRelayer struct {
	repo      OutboxRepo
	batchSize int
	interval  time.Duration
	sender    Sender
	log       *logrus.Logger
}

func NewOutboxRelayer(repo OutboxRepo, sender Sender, log *logrus.Logger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
		log:       log,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// 一批一批投递，失败的标记重试下一轮再来
func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		r.log.WithError(err).Warn("outbox query failed")
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			r.log.WithError(err).WithField("outbox_id", ob.ID).Warn("outbox send failed")
			_ = r.repo.MarkRetry(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender 按用户ID分区投递到 Kafka
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ScoreOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.UserID), []byte(ob.Payload))
	}
}

// LogSender Kafka 未启用时的降级投递：只打日志
func LogSender(log *logrus.Logger) Sender {
	return func(ctx context.Context, ob *model.ScoreOutbox) error {
		log.WithFields(logrus.Fields{
			"kind":    ob.Kind,
			"user_id": ob.UserID,
		}).Info("score event")
		return nil
	}
}
