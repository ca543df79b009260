package nutrition

// 教练建议文案
const (
	TipProteinSnack  = "Try a protein-forward snack this afternoon (Greek yogurt, eggs, tuna)."
	TipLighterDinner = "You're close to your target, plan a lighter dinner portion."
	TipGreatPace     = "Great pace! A balanced lunch keeps evening cravings down."
	TipConsistency   = "Nice work staying consistent. Small wins compound."
)

// MaxTips 是教练建议的最大条数
const MaxTips = 2

const lighterDinnerWindow = 250

// Tips 按优先级返回至多两条建议：
// 蛋白质不足 60% 目标、剩余热量在 (0, 250)、热量低于 40% 目标，都不满足时给出通用鼓励。
func Tips(totals Totals, calorieTarget, proteinTarget, remainingCalories float64) []string {
	tips := make([]string, 0, MaxTips)
	add := func(tip string) {
		if len(tips) < MaxTips {
			tips = append(tips, tip)
		}
	}

	if totals.Protein*10 < proteinTarget*6 {
		add(TipProteinSnack)
	}
	if remainingCalories > 0 && remainingCalories < lighterDinnerWindow {
		add(TipLighterDinner)
	}
	if totals.Calories*10 < calorieTarget*4 {
		add(TipGreatPace)
	}
	if len(tips) == 0 {
		add(TipConsistency)
	}

	return tips
}
