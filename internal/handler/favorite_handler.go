package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallwins/internal/service"
)

type favoritePayload struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// ListFavorites 返回收藏列表
func (a *API) ListFavorites(c *gin.Context) {
	favs, err := a.tracker.Favorites().List(currentUserID(c))
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	items := make([]gin.H, 0, len(favs))
	for _, fav := range favs {
		items = append(items, favoriteToPayload(fav))
	}
	c.JSON(http.StatusOK, gin.H{"favorites": items})
}

// CreateFavorite 新建收藏
func (a *API) CreateFavorite(c *gin.Context) {
	var payload favoritePayload
	if !bindJSON(c, &payload, "invalid favorite payload") {
		return
	}

	userID := currentUserID(c)
	fav, err := a.tracker.Favorites().Create(userID, service.FavoriteInput(payload))
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	a.logger.Info(c.Request.Context(), "favorite_added", "user_id", userID, "favorite_id", fav.ID, "name", fav.Name)
	c.JSON(http.StatusCreated, gin.H{"favorite": favoriteToPayload(*fav)})
}

// UpdateFavorite 更新收藏
func (a *API) UpdateFavorite(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid favorite id")
	if !ok {
		return
	}

	var payload favoritePayload
	if !bindJSON(c, &payload, "invalid favorite payload") {
		return
	}

	fav, err := a.tracker.Favorites().Update(currentUserID(c), id, service.FavoriteInput(payload))
	if err != nil {
		handleTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": favoriteToPayload(*fav)})
}

// DeleteFavorite 删除收藏
func (a *API) DeleteFavorite(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid favorite id")
	if !ok {
		return
	}

	if err := a.tracker.Favorites().Delete(currentUserID(c), id); err != nil {
		handleTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// LogFavorite 一键记录收藏，按当前设置缩放并推断餐次
func (a *API) LogFavorite(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid favorite id")
	if !ok {
		return
	}

	userID := currentUserID(c)
	entry, today, err := a.tracker.QuickAdd(c.Request.Context(), userID, id)
	if err != nil {
		handleTrackerError(c, err)
		return
	}

	a.publishToday(c.Request.Context(), userID, today)
	c.JSON(http.StatusCreated, gin.H{"entry": entryToPayload(*entry), "today": todayToPayload(today)})
}
