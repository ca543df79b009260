package db

import (
	"time"

	"gorm.io/gorm"
)

// Entry 是一条饮食记录，写入后不再修改，只能按 ID 删除。
// Calories/Protein 存储的是已经按家庭份量缩放后的数值。
type Entry struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"index:idx_entries_user_created"`
	Name      string `gorm:"not null"`
	Meal      string `gorm:"size:20;not null"`
	Calories  float64
	Protein   float64
	CreatedAt time.Time      `gorm:"index:idx_entries_user_created"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Favorite 是用户收藏的常吃食物，与当日统计无关
type Favorite struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"index"`
	Name      string `gorm:"not null"`
	Calories  float64
	Protein   float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
