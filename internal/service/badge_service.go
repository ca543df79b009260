package service

import (
	"fmt"
	"time"

	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/nutrition"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadgeService 持久化每天获得的徽章，只追加不删除
type BadgeService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBadgeService 构造 BadgeService
func NewBadgeService(gdb *gorm.DB) *BadgeService {
	return &BadgeService{db: gdb, now: time.Now}
}

// ListForDay 返回某天已获得的徽章，按获得顺序排列
func (s *BadgeService) ListForDay(userID uint, day time.Time) ([]nutrition.Badge, error) {
	var rows []db.EarnedBadge
	if err := s.db.Where("user_id = ? AND log_date = ?", userID, normalizeToDate(day)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}

	badges := make([]nutrition.Badge, 0, len(rows))
	for _, row := range rows {
		badges = append(badges, nutrition.Badge{Key: row.Key, Label: row.Label, Icon: row.Icon})
	}
	return badges, nil
}

// Record 写入新获得的徽章，已存在的 Key 会被忽略
func (s *BadgeService) Record(userID uint, day time.Time, badges []nutrition.Badge) error {
	if len(badges) == 0 {
		return nil
	}

	logDate := normalizeToDate(day)
	earnedAt := s.now()

	rows := make([]db.EarnedBadge, 0, len(badges))
	for _, b := range badges {
		rows = append(rows, db.EarnedBadge{
			UserID:   userID,
			LogDate:  logDate,
			Key:      b.Key,
			Label:    b.Label,
			Icon:     b.Icon,
			EarnedAt: earnedAt,
		})
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}, {Name: "key"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return fmt.Errorf("record badges: %w", err)
	}
	return nil
}
