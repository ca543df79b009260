package service

import (
	"context"
	"time"
)

// HealthSummary 是健康平台同步的活动数据，仅用于展示
type HealthSummary struct {
	Steps            int
	ExerciseCalories int
	Connected        bool
}

// HealthProvider 提供当天的步数与运动消耗
type HealthProvider interface {
	Today(ctx context.Context, userID uint) (HealthSummary, error)
}

// MockHealthProvider 在未接入真实平台时按日期生成稳定的模拟数据
type MockHealthProvider struct {
	Enabled bool
	Now     func() time.Time
}

// Today 实现 HealthProvider
func (p MockHealthProvider) Today(_ context.Context, userID uint) (HealthSummary, error) {
	if !p.Enabled {
		return HealthSummary{}, nil
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	seed := now().YearDay()*137 + int(userID)*53
	steps := 4000 + seed%6000
	return HealthSummary{
		Steps:            steps,
		ExerciseCalories: steps / 25,
		Connected:        true,
	}, nil
}
