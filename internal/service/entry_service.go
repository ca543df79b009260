package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/nutrition"
	"gorm.io/gorm"
)

var (
	// ErrEntryNotFound 在指定条目不存在或不属于当前用户时返回
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryService 负责饮食条目的读取、新增与删除
// 条目写入后不可修改；数值在写入前已完成份量缩放
type EntryService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEntryService 构造 EntryService
func NewEntryService(gdb *gorm.DB) *EntryService {
	return &EntryService{db: gdb, now: time.Now}
}

// ListForDay 返回用户某一天的条目，按创建时间倒序
func (s *EntryService) ListForDay(userID uint, day time.Time) ([]nutrition.Entry, error) {
	start := normalizeToDate(day)
	end := start.AddDate(0, 0, 1)

	var rows []db.Entry
	if err := s.db.Where("user_id = ?", userID).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]nutrition.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toEntry(row))
	}
	return entries, nil
}

// Create 写入一条已校验的条目并分配 ID
func (s *EntryService) Create(userID uint, entry nutrition.Entry) (*nutrition.Entry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	row := db.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      entry.Name,
		Meal:      string(entry.Meal),
		Calories:  entry.Calories,
		Protein:   entry.Protein,
		CreatedAt: createdAt,
	}

	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	created := toEntry(row)
	return &created, nil
}

// Delete 按 ID 删除条目
func (s *EntryService) Delete(userID uint, id string) error {
	result := s.db.Where("user_id = ?", userID).Delete(&db.Entry{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func toEntry(row db.Entry) nutrition.Entry {
	return nutrition.Entry{
		ID:        row.ID,
		Name:      row.Name,
		Calories:  row.Calories,
		Protein:   row.Protein,
		Meal:      nutrition.Meal(row.Meal),
		CreatedAt: row.CreatedAt,
	}
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
