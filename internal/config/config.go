// Package config 从环境变量加载配置，envconfig 负责映射和默认值
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"Sizzle_Season/internal/model"
)

type Config struct {
	// --- HTTP ---
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// --- MySQL ---
	DBHost     string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort     int    `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER" default:"sizzle"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"sizzle_season"`

	// --- Redis ---
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// --- JWT ---
	JWTAccessSecret  string `envconfig:"JWT_ACCESS_SECRET" required:"true"`
	JWTRefreshSecret string `envconfig:"JWT_REFRESH_SECRET" required:"true"`

	// --- SMTP（注册验证码） ---
	SMTPHost     string `envconfig:"SMTP_HOST" default:""`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"Sizzle Season <no-reply@sizzleseason.app>"`

	// --- Kafka ---
	KafkaEnabled    bool   `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokersRaw string `envconfig:"KAFKA_BROKERS" default:"127.0.0.1:9092"`
	KafkaScoreTopic string `envconfig:"KAFKA_SCORE_TOPIC" default:"score-events"`

	// --- 积分策略表 ---
	// 各类事件的分值；评论不计分，所以没有对应项
	PointsDishSubmitted   int64 `envconfig:"POINTS_DISH_SUBMITTED" default:"50"`
	PointsLikeReceived    int64 `envconfig:"POINTS_LIKE_RECEIVED" default:"5"`
	PointsGroupCreated    int64 `envconfig:"POINTS_GROUP_CREATED" default:"25"`
	PointsChallengeWon    int64 `envconfig:"POINTS_CHALLENGE_WON" default:"200"`
	PointsDailyEngagement int64 `envconfig:"POINTS_DAILY_ENGAGEMENT" default:"10"`
	DailyCheckInEnabled   bool  `envconfig:"DAILY_CHECKIN_ENABLED" default:"true"`

	// --- 后台任务 ---
	SettleCronSpec    string `envconfig:"SETTLE_CRON_SPEC" default:"*/5 * * * *"`
	ReconcileCronSpec string `envconfig:"RECONCILE_CRON_SPEC" default:"13 3 * * *"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.PointsDishSubmitted <= 0 || c.PointsLikeReceived <= 0 ||
		c.PointsGroupCreated <= 0 || c.PointsChallengeWon <= 0 ||
		c.PointsDailyEngagement <= 0 {
		return fmt.Errorf("score points must be positive")
	}
	return nil
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) KafkaBrokers() []string {
	parts := strings.Split(c.KafkaBrokersRaw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ScorePolicy 事件类型到分值的映射，未出现的类型不计分
func (c *Config) ScorePolicy() map[model.EventKind]int64 {
	return map[model.EventKind]int64{
		model.EventDishSubmitted:   c.PointsDishSubmitted,
		model.EventLikeReceived:    c.PointsLikeReceived,
		model.EventGroupCreated:    c.PointsGroupCreated,
		model.EventChallengeWon:    c.PointsChallengeWon,
		model.EventDailyEngagement: c.PointsDailyEngagement,
	}
}
