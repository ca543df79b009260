package nutrition

import "fmt"

// Totals 是当日条目的热量与蛋白质合计，只在单次计算中有效
type Totals struct {
	Calories float64
	Protein  float64
}

// ComputeTotals 对传入条目求和，不按餐次或日期过滤。
// 任意条目不合法时返回 ErrMalformedEntry。
func ComputeTotals(entries []Entry) (Totals, error) {
	var totals Totals
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return Totals{}, fmt.Errorf("entry %d (%s): %w", i, e.ID, err)
		}
		totals.Calories += e.Calories
		totals.Protein += e.Protein
	}
	return totals, nil
}
