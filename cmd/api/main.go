package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"Sizzle_Season/internal/config"
	"Sizzle_Season/internal/handler"
	"Sizzle_Season/internal/jobs"
	"Sizzle_Season/internal/pkg"
	"Sizzle_Season/internal/repository/mysql"
	redisrepo "Sizzle_Season/internal/repository/redis"
	"Sizzle_Season/internal/router"
	"Sizzle_Season/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config failed")
	}

	db, err := mysql.Open(cfg.MySQLDSN())
	if err != nil {
		log.WithError(err).Fatal("mysql connect failed")
	}
	if err = mysql.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("migrate failed")
	}
	if err = mysql.SeedAchievements(db); err != nil {
		log.WithError(err).Fatal("seed achievements failed")
	}

	rdb, err := redisrepo.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connect failed")
	}

	// 仓储
	userRepo := &mysql.UserRepository{DB: db}
	scoreRepo := &mysql.ScoreEventRepository{DB: db}
	achieveRepo := &mysql.AchievementRepository{DB: db}
	groupRepo := &mysql.GroupRepository{DB: db}
	subRepo := &mysql.SubmissionRepository{DB: db}
	challengeRepo := &mysql.ChallengeRepository{DB: db}
	outboxRepo := &mysql.OutboxRepository{DB: db}
	reconcilerRepo := &mysql.ScoreReconcilerRepository{DB: db}

	sessions := &redisrepo.SessionRepository{RDB: rdb}
	codes := &redisrepo.CodeRepository{RDB: rdb}
	board := &redisrepo.LeaderboardRepository{RDB: rdb}
	likeCache := redisrepo.NewLikeCacheRepository(rdb)
	lock := &redisrepo.DistLock{RDB: rdb}

	// 服务
	tokens := pkg.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	emailSvc := service.NewEmailService(smtp, codes)
	userSvc := service.NewUserService(userRepo, sessions, emailSvc, tokens)
	scoreSvc := service.NewScoreService(scoreRepo, board, cfg.ScorePolicy(), cfg.DailyCheckInEnabled)
	achieveSvc := service.NewAchievementService(achieveRepo)
	groupSvc := service.NewGroupService(groupRepo, scoreSvc, achieveSvc)
	engageSvc := service.NewEngagementService(subRepo, challengeRepo, scoreSvc, achieveSvc, likeCache, lock)
	challengeSvc := service.NewChallengeService(challengeRepo, subRepo, scoreSvc, achieveSvc)
	profileSvc := service.NewProfileService(userRepo, scoreSvc, achieveSvc, achieveRepo, subRepo)
	reconciler := service.NewScoreReconciler(reconcilerRepo, log)

	// 积分事件投递：Kafka 关掉时降级为日志输出
	sender := service.LogSender(log)
	if cfg.KafkaEnabled {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers(),
			Topic:   cfg.KafkaScoreTopic,
		})
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(outboxRepo, sender, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relayer.Run(ctx)

	// 定时任务
	scheduler := jobs.NewScheduler(challengeSvc, reconciler, log)
	if err = scheduler.Register(cfg.SettleCronSpec, cfg.ReconcileCronSpec); err != nil {
		log.WithError(err).Fatal("register cron failed")
	}
	scheduler.Start()
	defer scheduler.Stop()

	h := router.Handlers{
		User:       handler.NewUserHandler(userSvc),
		Email:      handler.NewEmailHandler(emailSvc),
		Group:      handler.NewGroupHandler(groupSvc),
		Submission: handler.NewSubmissionHandler(engageSvc),
		Challenge:  handler.NewChallengeHandler(challengeSvc),
		Profile:    handler.NewProfileHandler(profileSvc, scoreSvc, achieveSvc),
	}

	r := router.InitRouter(h, tokens, sessions)
	log.WithField("addr", cfg.HTTPAddr).Info("server starting")
	if err = r.Run(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
