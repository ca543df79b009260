package nutrition

import "strings"

// Food 是估算器返回或收藏夹保存的营养信息
type Food struct {
	Name     string
	Calories float64
	Protein  float64
}

// Candidate 把估算结果转换为待记录条目
func (f Food) Candidate(meal Meal) Candidate {
	calories, protein := f.Calories, f.Protein
	return Candidate{Name: f.Name, Calories: &calories, Protein: &protein, Meal: string(meal)}
}

// StarterFavorites 是新用户默认拥有的收藏
var StarterFavorites = []Food{
	{Name: "Greek yogurt + berries", Calories: 220, Protein: 20},
	{Name: "Turkey sandwich", Calories: 420, Protein: 28},
	{Name: "Protein shake", Calories: 180, Protein: 24},
	{Name: "Family spaghetti (1 cup)", Calories: 320, Protein: 14},
}

// catalogItem 以关键词匹配常见食物的单份营养
type catalogItem struct {
	Food
	Barcode  string
	Keywords []string
}

var catalog = []catalogItem{
	{Food: Food{Name: "Greek yogurt", Calories: 150, Protein: 15}, Barcode: "0036632026323", Keywords: []string{"yogurt", "yoghurt"}},
	{Food: Food{Name: "Banana", Calories: 105, Protein: 1}, Barcode: "0000000040118", Keywords: []string{"banana"}},
	{Food: Food{Name: "Apple", Calories: 95, Protein: 0}, Barcode: "0000000040161", Keywords: []string{"apple"}},
	{Food: Food{Name: "Boiled egg", Calories: 78, Protein: 6}, Barcode: "0072745800011", Keywords: []string{"egg"}},
	{Food: Food{Name: "Oatmeal", Calories: 160, Protein: 6}, Barcode: "0030000010402", Keywords: []string{"oat", "porridge", "oatmeal"}},
	{Food: Food{Name: "Turkey wrap", Calories: 390, Protein: 28}, Barcode: "0041220576289", Keywords: []string{"wrap", "burrito", "tortilla"}},
	{Food: Food{Name: "Cheese pizza slice", Calories: 285, Protein: 12}, Barcode: "0071921002749", Keywords: []string{"pizza"}},
	{Food: Food{Name: "Green salad", Calories: 120, Protein: 3}, Barcode: "0071430010112", Keywords: []string{"salad", "lettuce", "vegetable"}},
	{Food: Food{Name: "Spaghetti bolognese", Calories: 520, Protein: 24}, Barcode: "0076808280043", Keywords: []string{"pasta", "spaghetti", "noodle"}},
	{Food: Food{Name: "Grilled chicken breast", Calories: 280, Protein: 53}, Barcode: "0021130044318", Keywords: []string{"chicken", "poultry"}},
	{Food: Food{Name: "Hamburger", Calories: 540, Protein: 25}, Barcode: "0070662404010", Keywords: []string{"burger", "hamburger", "sandwich"}},
	{Food: Food{Name: "Protein bar", Calories: 200, Protein: 20}, Barcode: "0722252100900", Keywords: []string{"bar", "snack"}},
}

// LookupBarcode 按条码查找食物
func LookupBarcode(code string) (Food, bool) {
	code = strings.TrimSpace(code)
	for _, item := range catalog {
		if item.Barcode == code {
			return item.Food, true
		}
	}
	return Food{}, false
}

// MatchLabels 按顺序匹配识别标签，返回第一个命中的食物
func MatchLabels(labels []string) (Food, bool) {
	for _, label := range labels {
		lower := strings.ToLower(strings.TrimSpace(label))
		if lower == "" {
			continue
		}
		for _, item := range catalog {
			for _, kw := range item.Keywords {
				if strings.Contains(lower, kw) {
					return item.Food, true
				}
			}
		}
	}
	return Food{}, false
}
