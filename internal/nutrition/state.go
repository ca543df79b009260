package nutrition

// DayState 是调用方持有的当日完整状态，每次变更后传入 Recompute
type DayState struct {
	Settings Settings
	Entries  []Entry
	Water    int
	Badges   []Badge
}

// Snapshot 是一次重算的结果
type Snapshot struct {
	Totals    Totals
	Progress  Progress
	Badges    []Badge
	NewBadges []Badge
	Tips      []string
}

// Recompute 从当日状态推导合计、进度、徽章与建议。
// 不修改入参；对同一输入重复调用结果一致，且不会重复授予徽章。
func Recompute(state DayState) (Snapshot, error) {
	return RecomputeWithRules(state, DefaultRules)
}

// RecomputeWithRules 与 Recompute 相同，但使用指定的徽章规则
func RecomputeWithRules(state DayState, rules []Rule) (Snapshot, error) {
	totals, err := ComputeTotals(state.Entries)
	if err != nil {
		return Snapshot{}, err
	}

	s := state.Settings
	progress := Evaluate(totals, s.CalorieTarget, s.ProteinTarget)

	badges, added := Award(state.Badges, RuleInput{
		Entries: state.Entries,
		Totals:  totals,
		Target:  s.CalorieTarget,
		Water:   state.Water,
	}, rules)

	return Snapshot{
		Totals:    totals,
		Progress:  progress,
		Badges:    badges,
		NewBadges: added,
		Tips:      Tips(totals, s.CalorieTarget, s.ProteinTarget, progress.RemainingCalories),
	}, nil
}
