package nutrition

import "math"

// Scale 在家庭模式开启时按份量倍数缩放数值并四舍五入（.5 远离零）。
// 倍数非正时按 1 处理。
func Scale(value float64, familyMode bool, multiplier float64) float64 {
	if !familyMode {
		return value
	}
	if !(multiplier > 0) {
		multiplier = 1
	}
	return math.Round(value * multiplier)
}
