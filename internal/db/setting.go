package db

import "gorm.io/gorm"

// UserSetting 以键值对存储用户的个人设置
type UserSetting struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex:idx_user_setting_key;not null"`
	Key    string `gorm:"size:100;uniqueIndex:idx_user_setting_key;not null"`
	Value  string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (UserSetting) TableName() string {
	return "user_settings"
}

const (
	// SettingKeyCalorieTarget 表示每日热量目标。
	SettingKeyCalorieTarget = "calorie_target"
	// SettingKeyProteinTarget 表示每日蛋白质目标。
	SettingKeyProteinTarget = "protein_target"
	// SettingKeyFamilyMode 表示是否开启家庭模式。
	SettingKeyFamilyMode = "family_mode"
	// SettingKeyPortionMultiplier 表示家庭模式下的份量倍数。
	SettingKeyPortionMultiplier = "portion_multiplier"
	// SettingKeyWeeklyMission 表示每周任务文本（Markdown）。
	SettingKeyWeeklyMission = "weekly_mission"
)
