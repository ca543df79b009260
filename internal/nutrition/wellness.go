package nutrition

const (
	MinMood     = 1
	MaxMood     = 5
	DefaultMood = 3
)

// AdjustWater 在杯数上加减 delta，结果不小于 0
func AdjustWater(cups, delta int) int {
	next := cups + delta
	if next < 0 {
		return 0
	}
	return next
}

// ValidMood 判断心情评分是否在 1~5 之间
func ValidMood(mood int) bool {
	return mood >= MinMood && mood <= MaxMood
}
