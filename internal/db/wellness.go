package db

import (
	"time"

	"gorm.io/gorm"
)

// DailyWellness 记录用户每天的饮水杯数与心情
// UserID + LogDate 采用唯一索引，保证每天只有一行
type DailyWellness struct {
	gorm.Model
	UserID    uint      `gorm:"index;uniqueIndex:idx_wellness_user_date"`
	LogDate   time.Time `gorm:"uniqueIndex:idx_wellness_user_date"`
	WaterCups int
	Mood      int
}

// TableName 重写确保唯一索引作用到 user_id + log_date
func (DailyWellness) TableName() string {
	return "daily_wellness"
}

// EarnedBadge 记录当天获得的徽章，只增不删
// UserID + LogDate + Key 唯一，重复授予时忽略
type EarnedBadge struct {
	ID       uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"uniqueIndex:idx_badge_user_date_key"`
	LogDate  time.Time `gorm:"uniqueIndex:idx_badge_user_date_key"`
	Key      string    `gorm:"size:50;uniqueIndex:idx_badge_user_date_key"`
	Label    string
	Icon     string
	EarnedAt time.Time
}

// TableName 固定徽章表名
func (EarnedBadge) TableName() string {
	return "earned_badges"
}
