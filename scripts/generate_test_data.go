package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/smallwins/internal/config"
	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/logging"
	"github.com/smallwins/internal/nutrition"
	"github.com/smallwins/internal/service"
	"gorm.io/gorm"
)

const (
	demoEmail = "demo@smallwins.local"
	demoName  = "Demo"
	demoDays  = 7
)

type demoMeal struct {
	hour    int
	meal    nutrition.Meal
	name    string
	kcal    float64
	protein float64
}

// 每天轮换的示例餐食
var demoMenu = [][]demoMeal{
	{
		{8, nutrition.Breakfast, "Oatmeal", 160, 6},
		{12, nutrition.Lunch, "Turkey wrap", 390, 28},
		{19, nutrition.Dinner, "Spaghetti bolognese", 520, 24},
	},
	{
		{9, nutrition.Breakfast, "Greek yogurt", 150, 15},
		{13, nutrition.Lunch, "Green salad", 120, 3},
		{16, nutrition.Snacks, "Protein bar", 200, 20},
		{20, nutrition.Dinner, "Grilled chicken breast", 280, 53},
	},
	{
		{12, nutrition.Lunch, "Hamburger", 540, 25},
		{18, nutrition.Dinner, "Cheese pizza slice", 285, 12},
		{21, nutrition.Snacks, "Cheese pizza slice", 285, 12},
	},
}

// 测试数据生成器
func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("读取 .env 失败:", err)
	}
	cfg := config.Load()
	if err := db.Init(db.Options{Driver: cfg.DatabaseDriver, Path: cfg.DatabasePath, DSN: cfg.DatabaseDSN}); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	logger := logging.New(os.Stdout, cfg.LogLevel)
	userID, err := seedDemoData(context.Background(), db.DB, logger, time.Now(), demoDays)
	if err != nil {
		log.Fatal("生成测试数据失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Printf("用户: %s (id=%d)\n", demoEmail, userID)
	fmt.Printf("天数: %d\n", demoDays)
}

// seedDemoData 为演示用户生成最近几天的条目、饮水与心情，徽章由重算自然产生。
// 已存在的演示用户不会重复写入。
func seedDemoData(ctx context.Context, gdb *gorm.DB, logger logging.Logger, now time.Time, days int) (uint, error) {
	user, created, err := db.EnsureUser(gdb, demoEmail, demoName)
	if err != nil {
		return 0, err
	}
	if !created {
		fmt.Println("演示用户已存在，跳过创建")
		return user.ID, nil
	}

	tracker := service.NewTrackerService(gdb, logger)
	if err := tracker.Favorites().SeedStarters(user.ID); err != nil {
		return 0, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for offset := days - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		menu := demoMenu[offset%len(demoMenu)]

		for _, m := range menu {
			at := day.Add(time.Duration(m.hour) * time.Hour)
			tracker.SetClock(func() time.Time { return at })

			kcal, protein := m.kcal, m.protein
			if _, _, err := tracker.AddEntry(ctx, user.ID, nutrition.Candidate{
				Name:     m.name,
				Calories: &kcal,
				Protein:  &protein,
				Meal:     string(m.meal),
			}); err != nil {
				return 0, fmt.Errorf("seed entry %s: %w", m.name, err)
			}
		}

		if _, err := tracker.AdjustWater(ctx, user.ID, 4+offset%5); err != nil {
			return 0, err
		}
		if _, err := tracker.SetMood(ctx, user.ID, 2+offset%4); err != nil {
			return 0, err
		}
		fmt.Printf("✅ %s 数据已生成\n", day.Format("2006-01-02"))
	}

	return user.ID, nil
}
