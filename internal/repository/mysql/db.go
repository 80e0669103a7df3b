package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"Sizzle_Season/internal/model"
)

// Open 建立连接；句柄由调用方注入各仓储，不放包级变量
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate 自动建表（开发阶段 OK）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ScoreEvent{},
		&model.ScoreOutbox{},
		&model.Group{},
		&model.GroupMember{},
		&model.Challenge{},
		&model.Submission{},
		&model.SubmissionLike{},
		&model.Comment{},
		&model.Achievement{},
		&model.UserAchievement{},
	)
}

// SeedAchievements 幂等写入默认成就集
func SeedAchievements(db *gorm.DB) error {
	for _, a := range model.SeedAchievements() {
		res := db.Where("title = ?", a.Title).FirstOrCreate(&a)
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}
