package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallwins/internal/nutrition"
	"github.com/smallwins/internal/service"
)

type entryPayload struct {
	Name     string   `json:"name"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Meal     string   `json:"meal"`
}

type waterPayload struct {
	Delta int `json:"delta"`
}

type moodPayload struct {
	Mood int `json:"mood"`
}

type settingsPayload struct {
	CalorieTarget     float64 `json:"calorie_target"`
	ProteinTarget     float64 `json:"protein_target"`
	FamilyMode        bool    `json:"family_mode"`
	PortionMultiplier float64 `json:"portion_multiplier"`
	Mission           string  `json:"mission"`
}

// GetToday 返回当天的完整视图
func (a *API) GetToday(c *gin.Context) {
	today, err := a.tracker.Today(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, todayToPayload(today))
}

// ListEntries 返回当天条目，最新的在前
func (a *API) ListEntries(c *gin.Context) {
	today, err := a.tracker.Today(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": serializeEntries(today.Entries)})
}

// CreateEntry 记录一条饮食条目
func (a *API) CreateEntry(c *gin.Context) {
	var payload entryPayload
	if !bindJSON(c, &payload, "invalid entry payload") {
		return
	}

	userID := currentUserID(c)
	entry, today, err := a.tracker.AddEntry(c.Request.Context(), userID, nutrition.Candidate{
		Name:     payload.Name,
		Calories: payload.Calories,
		Protein:  payload.Protein,
		Meal:     payload.Meal,
	})
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	a.publishToday(c.Request.Context(), userID, today)
	c.JSON(http.StatusCreated, gin.H{"entry": entryToPayload(*entry), "today": todayToPayload(today)})
}

// DeleteEntry 删除条目，已获得的徽章保留
func (a *API) DeleteEntry(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid entry id")
	if !ok {
		return
	}

	userID := currentUserID(c)
	today, err := a.tracker.RemoveEntry(c.Request.Context(), userID, id)
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	a.publishToday(c.Request.Context(), userID, today)
	c.JSON(http.StatusOK, gin.H{"deleted": true, "today": todayToPayload(today)})
}

// AdjustWater 调整当天饮水杯数
func (a *API) AdjustWater(c *gin.Context) {
	var payload waterPayload
	if !bindJSON(c, &payload, "invalid water payload") {
		return
	}

	userID := currentUserID(c)
	today, err := a.tracker.AdjustWater(c.Request.Context(), userID, payload.Delta)
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	a.publishToday(c.Request.Context(), userID, today)
	c.JSON(http.StatusOK, todayToPayload(today))
}

// SetMood 记录当天心情
func (a *API) SetMood(c *gin.Context) {
	var payload moodPayload
	if !bindJSON(c, &payload, "invalid mood payload") {
		return
	}

	userID := currentUserID(c)
	today, err := a.tracker.SetMood(c.Request.Context(), userID, payload.Mood)
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	a.publishToday(c.Request.Context(), userID, today)
	c.JSON(http.StatusOK, todayToPayload(today))
}

// GetSettings 返回用户设置
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.tracker.Settings(currentUserID(c))
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settingsToPayload(settings)})
}

// UpdateSettings 保存设置，之后的条目按新设置缩放
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "invalid settings payload") {
		return
	}

	userID := currentUserID(c)
	today, err := a.tracker.UpdateSettings(c.Request.Context(), userID, service.SettingsInput{
		CalorieTarget:     payload.CalorieTarget,
		ProteinTarget:     payload.ProteinTarget,
		FamilyMode:        payload.FamilyMode,
		PortionMultiplier: payload.PortionMultiplier,
		Mission:           payload.Mission,
	})
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	a.publishToday(c.Request.Context(), userID, today)
	c.JSON(http.StatusOK, gin.H{"settings": settingsToPayload(today.Settings), "today": todayToPayload(today)})
}

func handleTrackerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, nutrition.ErrMalformedEntry),
		errors.Is(err, nutrition.ErrUnknownMeal),
		errors.Is(err, nutrition.ErrInvalidTarget),
		errors.Is(err, nutrition.ErrInvalidMultiplier),
		errors.Is(err, service.ErrInvalidMood),
		errors.Is(err, service.ErrFavoriteInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEntryNotFound):
		respondError(c, http.StatusNotFound, "entry not found")
	case errors.Is(err, service.ErrFavoriteNotFound):
		respondError(c, http.StatusNotFound, "favorite not found")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "operation failed")
	}
}
