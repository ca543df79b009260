package nutrition

import (
	"fmt"
	"slices"
)

const (
	// DefaultCalorieTarget 是新用户的每日热量目标
	DefaultCalorieTarget = 1800
	// DefaultProteinTarget 是新用户的每日蛋白质目标（克）
	DefaultProteinTarget = 90
	// DefaultMission 是新用户的每周任务
	DefaultMission = "Track breakfast every day this week"
)

// ValidMultipliers 是家庭模式下允许选择的份量倍数
var ValidMultipliers = []float64{0.5, 1, 1.5, 2, 3}

// Settings 是用户可调整的目标与家庭模式配置
type Settings struct {
	CalorieTarget     float64
	ProteinTarget     float64
	FamilyMode        bool
	PortionMultiplier float64
}

// DefaultSettings 返回首次使用时的默认配置
func DefaultSettings() Settings {
	return Settings{
		CalorieTarget:     DefaultCalorieTarget,
		ProteinTarget:     DefaultProteinTarget,
		PortionMultiplier: 1,
	}
}

// Validate 在设置写入前校验目标与倍数
func (s Settings) Validate() error {
	if !(s.CalorieTarget > 0) {
		return fmt.Errorf("%w: calorie target %v", ErrInvalidTarget, s.CalorieTarget)
	}
	if !(s.ProteinTarget > 0) {
		return fmt.Errorf("%w: protein target %v", ErrInvalidTarget, s.ProteinTarget)
	}
	if !slices.Contains(ValidMultipliers, s.PortionMultiplier) {
		return fmt.Errorf("%w: %v", ErrInvalidMultiplier, s.PortionMultiplier)
	}
	return nil
}
