// Package nutrition 实现每日营养汇总与成就计算，所有函数均为纯函数，不做任何 I/O。
package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrMalformedEntry 条目缺少热量或数值为负/非有限数
	ErrMalformedEntry = errors.New("malformed entry")
	// ErrInvalidTarget 热量或蛋白质目标不是正数
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInvalidMultiplier 份量倍数不在允许集合内
	ErrInvalidMultiplier = errors.New("invalid portion multiplier")
	// ErrUnknownMeal 餐次不在 Breakfast/Lunch/Dinner/Snacks 中
	ErrUnknownMeal = errors.New("unknown meal")
)

// Meal 表示餐次
type Meal string

const (
	Breakfast Meal = "Breakfast"
	Lunch     Meal = "Lunch"
	Dinner    Meal = "Dinner"
	Snacks    Meal = "Snacks"
)

// MealOrder 是展示分组时的固定顺序
var MealOrder = []Meal{Breakfast, Lunch, Dinner, Snacks}

// ParseMeal 规范化餐次名称，空字符串回退到 Snacks
func ParseMeal(raw string) (Meal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Snacks, nil
	}
	for _, m := range MealOrder {
		if strings.EqualFold(trimmed, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMeal, raw)
}

// InferMeal 根据当前时刻推断餐次
func InferMeal(t time.Time) Meal {
	switch h := t.Hour(); {
	case h < 11:
		return Breakfast
	case h < 16:
		return Lunch
	case h < 21:
		return Dinner
	default:
		return Snacks
	}
}

// Entry 是一条已记录的饮食条目，ID 由存储层分配
type Entry struct {
	ID        string
	Name      string
	Calories  float64
	Protein   float64
	Meal      Meal
	CreatedAt time.Time
}

// Validate 检查条目数值是否合法
func (e Entry) Validate() error {
	if !validAmount(e.Calories) {
		return fmt.Errorf("%w: calories %v", ErrMalformedEntry, e.Calories)
	}
	if !validAmount(e.Protein) {
		return fmt.Errorf("%w: protein %v", ErrMalformedEntry, e.Protein)
	}
	return nil
}

// Candidate 是尚未入库的待记录条目，来源可以是手动输入、收藏、条码或图像估算。
// Calories 必填；Protein 缺省视为 0；Meal 缺省为 Snacks。
type Candidate struct {
	Name     string
	Calories *float64
	Protein  *float64
	Meal     string
}

// Resolve 校验候选条目并按家庭模式缩放一次，返回可直接写入存储的条目（不含 ID）。
func (c Candidate) Resolve(settings Settings) (Entry, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return Entry{}, fmt.Errorf("%w: name is required", ErrMalformedEntry)
	}
	if c.Calories == nil {
		return Entry{}, fmt.Errorf("%w: calories is required", ErrMalformedEntry)
	}

	protein := 0.0
	if c.Protein != nil {
		protein = *c.Protein
	}

	meal, err := ParseMeal(c.Meal)
	if err != nil {
		return Entry{}, err
	}

	raw := Entry{Name: name, Calories: *c.Calories, Protein: protein, Meal: meal}
	if err := raw.Validate(); err != nil {
		return Entry{}, err
	}

	raw.Calories = Scale(raw.Calories, settings.FamilyMode, settings.PortionMultiplier)
	raw.Protein = Scale(raw.Protein, settings.FamilyMode, settings.PortionMultiplier)
	return raw, nil
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
