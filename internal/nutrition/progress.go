package nutrition

import "math"

// Status 是进度条的三档状态
type Status string

const (
	StatusOnTrack Status = "on_track"
	StatusClose   Status = "close"
	StatusOver    Status = "over"
)

// Progress 描述当日热量进度
type Progress struct {
	Percent           float64
	Status            Status
	RemainingCalories float64
	RemainingProtein  float64
}

// Evaluate 根据合计与目标计算进度。
// 状态基于未截断的比例：<80% on_track，80%~110%（含）close，>110% over。
// 目标不为正时百分比为 0、状态为 on_track。
func Evaluate(totals Totals, calorieTarget, proteinTarget float64) Progress {
	p := Progress{
		Status:            StatusOnTrack,
		RemainingCalories: math.Max(0, calorieTarget-totals.Calories),
		RemainingProtein:  math.Max(0, proteinTarget-totals.Protein),
	}

	if !(calorieTarget > 0) {
		return p
	}

	p.Percent = math.Min(100, totals.Calories/calorieTarget*100)

	// 交叉相乘比较，避免 0.8/1.1 的浮点误差落在边界上
	scaled := totals.Calories * 100
	switch {
	case scaled < calorieTarget*80:
		p.Status = StatusOnTrack
	case scaled <= calorieTarget*110:
		p.Status = StatusClose
	default:
		p.Status = StatusOver
	}

	return p
}
