package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/nutrition"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidMood 当心情评分不在 1~5 时返回
var ErrInvalidMood = errors.New("mood must be between 1 and 5")

// Wellness 是某一天的饮水与心情
type Wellness struct {
	WaterCups int
	Mood      int
}

// WellnessService 负责每日饮水计数与心情记录
type WellnessService struct {
	db *gorm.DB
}

// NewWellnessService 构造 WellnessService
func NewWellnessService(gdb *gorm.DB) *WellnessService {
	return &WellnessService{db: gdb}
}

// Get 返回某天的记录，没有记录时返回默认值
func (s *WellnessService) Get(userID uint, day time.Time) (Wellness, error) {
	var row db.DailyWellness
	err := s.db.Where("user_id = ? AND log_date = ?", userID, normalizeToDate(day)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Wellness{Mood: nutrition.DefaultMood}, nil
		}
		return Wellness{}, fmt.Errorf("get wellness: %w", err)
	}
	return Wellness{WaterCups: row.WaterCups, Mood: row.Mood}, nil
}

// AdjustWater 在当天饮水杯数上加减 delta，结果不小于 0
func (s *WellnessService) AdjustWater(userID uint, day time.Time, delta int) (Wellness, error) {
	var result Wellness
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row, err := s.findOrCreate(tx, userID, day)
		if err != nil {
			return err
		}

		row.WaterCups = nutrition.AdjustWater(row.WaterCups, delta)
		if err := tx.Model(row).Update("water_cups", row.WaterCups).Error; err != nil {
			return err
		}

		result = Wellness{WaterCups: row.WaterCups, Mood: row.Mood}
		return nil
	})
	if err != nil {
		return Wellness{}, fmt.Errorf("adjust water: %w", err)
	}
	return result, nil
}

// SetMood 保存当天心情
func (s *WellnessService) SetMood(userID uint, day time.Time, mood int) (Wellness, error) {
	if !nutrition.ValidMood(mood) {
		return Wellness{}, ErrInvalidMood
	}

	var result Wellness
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row, err := s.findOrCreate(tx, userID, day)
		if err != nil {
			return err
		}

		if err := tx.Model(row).Update("mood", mood).Error; err != nil {
			return err
		}

		result = Wellness{WaterCups: row.WaterCups, Mood: mood}
		return nil
	})
	if err != nil {
		return Wellness{}, fmt.Errorf("set mood: %w", err)
	}
	return result, nil
}

// findOrCreate 以 user_id + log_date 唯一索引保证幂等创建
func (s *WellnessService) findOrCreate(tx *gorm.DB, userID uint, day time.Time) (*db.DailyWellness, error) {
	logDate := normalizeToDate(day)

	record := db.DailyWellness{UserID: userID, LogDate: logDate, Mood: nutrition.DefaultMood}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoNothing: true,
	}).Create(&record).Error; err != nil {
		return nil, err
	}

	var row db.DailyWellness
	if err := tx.Where("user_id = ? AND log_date = ?", userID, logDate).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
