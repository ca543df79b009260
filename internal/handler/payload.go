package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallwins/internal/nutrition"
	"github.com/smallwins/internal/service"
)

const dateFormat = "2006-01-02"

func entryToPayload(entry nutrition.Entry) gin.H {
	return gin.H{
		"id":         entry.ID,
		"name":       entry.Name,
		"calories":   entry.Calories,
		"protein":    entry.Protein,
		"meal":       entry.Meal,
		"created_at": entry.CreatedAt.Format(time.RFC3339),
	}
}

func serializeEntries(entries []nutrition.Entry) []gin.H {
	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryToPayload(entry))
	}
	return items
}

// groupEntriesByMeal 按固定餐次顺序分组，空餐次也保留
func groupEntriesByMeal(entries []nutrition.Entry) []gin.H {
	groups := make([]gin.H, 0, len(nutrition.MealOrder))
	for _, meal := range nutrition.MealOrder {
		items := make([]gin.H, 0)
		var calories float64
		for _, entry := range entries {
			if entry.Meal != meal {
				continue
			}
			items = append(items, entryToPayload(entry))
			calories += entry.Calories
		}
		groups = append(groups, gin.H{
			"meal":     meal,
			"calories": calories,
			"entries":  items,
		})
	}
	return groups
}

func badgeToPayload(badge nutrition.Badge) gin.H {
	return gin.H{"key": badge.Key, "label": badge.Label, "icon": badge.Icon}
}

func serializeBadges(badges []nutrition.Badge) []gin.H {
	items := make([]gin.H, 0, len(badges))
	for _, badge := range badges {
		items = append(items, badgeToPayload(badge))
	}
	return items
}

func settingsToPayload(settings service.UserSettings) gin.H {
	return gin.H{
		"calorie_target":     settings.CalorieTarget,
		"protein_target":     settings.ProteinTarget,
		"family_mode":        settings.FamilyMode,
		"portion_multiplier": settings.PortionMultiplier,
		"mission":            settings.Mission,
		"mission_html":       renderMission(settings.Mission),
	}
}

func foodToPayload(food nutrition.Food) gin.H {
	return gin.H{"name": food.Name, "calories": food.Calories, "protein": food.Protein}
}

func favoriteToPayload(fav service.Favorite) gin.H {
	item := foodToPayload(fav.Food)
	item["id"] = fav.ID
	return item
}

func todayToPayload(today *service.Today) gin.H {
	snap := today.Snapshot
	tips := snap.Tips
	if tips == nil {
		tips = []string{}
	}

	return gin.H{
		"date": today.Date.Format(dateFormat),
		"totals": gin.H{
			"calories": snap.Totals.Calories,
			"protein":  snap.Totals.Protein,
		},
		"progress": gin.H{
			"percent":            snap.Progress.Percent,
			"status":             snap.Progress.Status,
			"remaining_calories": snap.Progress.RemainingCalories,
			"remaining_protein":  snap.Progress.RemainingProtein,
		},
		"badges":     serializeBadges(snap.Badges),
		"new_badges": serializeBadges(snap.NewBadges),
		"tips":       tips,
		"meals":      groupEntriesByMeal(today.Entries),
		"water_cups": today.Wellness.WaterCups,
		"water_goal": nutrition.WaterGoalCups,
		"mood":       today.Wellness.Mood,
		"settings":   settingsToPayload(today.Settings),
	}
}
