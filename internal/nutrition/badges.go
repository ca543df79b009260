package nutrition

// Badge 是一次性获得的成就标记，Key 稳定且唯一
type Badge struct {
	Key   string
	Label string
	Icon  string
}

const (
	BadgeBreakfast = "breakfast"
	BadgeOnTrack   = "ontrack"
	BadgeWater     = "water"
)

// WaterGoalCups 是饮水徽章要求的杯数
const WaterGoalCups = 8

// OnTrackAllowance 是 ontrack 徽章允许超出目标的热量
const OnTrackAllowance = 100

// RuleInput 是规则判定所需的当日状态
type RuleInput struct {
	Entries []Entry
	Totals  Totals
	Target  float64
	Water   int
}

// Rule 将徽章与其获得条件绑定
type Rule struct {
	Badge     Badge
	Predicate func(RuleInput) bool
}

// DefaultRules 是内置的徽章规则，顺序即授予顺序
var DefaultRules = []Rule{
	{
		Badge: Badge{Key: BadgeBreakfast, Label: "Logged Breakfast", Icon: "🥣"},
		Predicate: func(in RuleInput) bool {
			for _, e := range in.Entries {
				if e.Meal == Breakfast {
					return true
				}
			}
			return false
		},
	},
	{
		Badge: Badge{Key: BadgeOnTrack, Label: "On Track Today", Icon: "✅"},
		Predicate: func(in RuleInput) bool {
			return in.Totals.Calories <= in.Target+OnTrackAllowance
		},
	},
	{
		Badge: Badge{Key: BadgeWater, Label: "8 Cups of Water", Icon: "💧"},
		Predicate: func(in RuleInput) bool {
			return in.Water >= WaterGoalCups
		},
	},
}

// Award 依次判定规则，把尚未持有且条件成立的徽章追加到已有集合之后。
// 已持有的徽章不会被重新判定或移除；返回合并后的集合与本次新增的徽章。
func Award(held []Badge, in RuleInput, rules []Rule) (merged, added []Badge) {
	keys := make(map[string]struct{}, len(held)+len(rules))
	merged = make([]Badge, 0, len(held)+len(rules))
	for _, b := range held {
		if _, dup := keys[b.Key]; dup {
			continue
		}
		keys[b.Key] = struct{}{}
		merged = append(merged, b)
	}

	for _, rule := range rules {
		if _, ok := keys[rule.Badge.Key]; ok {
			continue
		}
		if rule.Predicate == nil || !rule.Predicate(in) {
			continue
		}
		keys[rule.Badge.Key] = struct{}{}
		merged = append(merged, rule.Badge)
		added = append(added, rule.Badge)
	}

	return merged, added
}

// SameKeys 按 Key 集合判断两个徽章集合是否相同
func SameKeys(a, b []Badge) bool {
	set := make(map[string]struct{}, len(a))
	for _, x := range a {
		set[x.Key] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, x := range b {
		if _, ok := set[x.Key]; !ok {
			return false
		}
		other[x.Key] = struct{}{}
	}
	return len(set) == len(other)
}

// LookupBadge 根据 Key 在规则中查找徽章定义
func LookupBadge(rules []Rule, key string) (Badge, bool) {
	for _, rule := range rules {
		if rule.Badge.Key == key {
			return rule.Badge, true
		}
	}
	return Badge{}, false
}
