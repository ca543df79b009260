package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/nutrition"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserSettings 描述用户可配置的目标、家庭模式与每周任务。
type UserSettings struct {
	nutrition.Settings
	Mission string
}

// SettingsInput 用于更新用户设置。
type SettingsInput struct {
	CalorieTarget     float64
	ProteinTarget     float64
	FamilyMode        bool
	PortionMultiplier float64
	Mission           string
}

// SettingService 提供用户设置的读取与更新能力。
type SettingService struct {
	db *gorm.DB
}

// NewSettingService 构造 SettingService。
func NewSettingService(gdb *gorm.DB) *SettingService {
	return &SettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeyCalorieTarget,
	db.SettingKeyProteinTarget,
	db.SettingKeyFamilyMode,
	db.SettingKeyPortionMultiplier,
	db.SettingKeyWeeklyMission,
}

// DefaultUserSettings 返回未保存过设置的用户所见的默认值。
func DefaultUserSettings() UserSettings {
	return UserSettings{Settings: nutrition.DefaultSettings(), Mission: nutrition.DefaultMission}
}

// GetSettings 读取用户设置，缺失或无法解析的键回退默认值。
func (s *SettingService) GetSettings(userID uint) (UserSettings, error) {
	result := DefaultUserSettings()

	var records []db.UserSetting
	if err := s.db.Where("user_id = ? AND key IN ?", userID, settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load user settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		switch record.Key {
		case db.SettingKeyCalorieTarget:
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				result.CalorieTarget = v
			}
		case db.SettingKeyProteinTarget:
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				result.ProteinTarget = v
			}
		case db.SettingKeyFamilyMode:
			if v, err := strconv.ParseBool(value); err == nil {
				result.FamilyMode = v
			}
		case db.SettingKeyPortionMultiplier:
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				result.PortionMultiplier = v
			}
		case db.SettingKeyWeeklyMission:
			if value != "" {
				result.Mission = record.Value
			}
		}
	}

	return result, nil
}

// UpdateSettings 校验并保存用户设置，任务为空时回退默认任务。
func (s *SettingService) UpdateSettings(userID uint, input SettingsInput) (UserSettings, error) {
	sanitized := UserSettings{
		Settings: nutrition.Settings{
			CalorieTarget:     input.CalorieTarget,
			ProteinTarget:     input.ProteinTarget,
			FamilyMode:        input.FamilyMode,
			PortionMultiplier: input.PortionMultiplier,
		},
		Mission: strings.TrimSpace(input.Mission),
	}
	if sanitized.PortionMultiplier == 0 {
		sanitized.PortionMultiplier = 1
	}
	if sanitized.Mission == "" {
		sanitized.Mission = nutrition.DefaultMission
	}

	if err := sanitized.Validate(); err != nil {
		return UserSettings{}, err
	}

	values := map[string]string{
		db.SettingKeyCalorieTarget:     formatFloat(sanitized.CalorieTarget),
		db.SettingKeyProteinTarget:     formatFloat(sanitized.ProteinTarget),
		db.SettingKeyFamilyMode:        strconv.FormatBool(sanitized.FamilyMode),
		db.SettingKeyPortionMultiplier: formatFloat(sanitized.PortionMultiplier),
		db.SettingKeyWeeklyMission:     sanitized.Mission,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range settingKeys {
			if err := upsertSetting(tx, userID, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return UserSettings{}, fmt.Errorf("update user settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, userID uint, key, value string) error {
	setting := db.UserSetting{UserID: userID, Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
