package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/smallwins/internal/handler"
)

const sessionName = "smallwins_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	public := r.Group("/api")
	{
		public.POST("/session", api.CreateSession)
		public.DELETE("/session", api.DeleteSession)
		public.GET("/health", api.GetHealth)
	}

	// 需要会话的路由
	auth := r.Group("/api")
	auth.Use(handler.UserRequired())
	{
		auth.GET("/today", api.GetToday)

		auth.GET("/entries", api.ListEntries)
		auth.POST("/entries", api.CreateEntry)
		auth.DELETE("/entries/:id", api.DeleteEntry)

		auth.GET("/favorites", api.ListFavorites)
		auth.POST("/favorites", api.CreateFavorite)
		auth.PUT("/favorites/:id", api.UpdateFavorite)
		auth.DELETE("/favorites/:id", api.DeleteFavorite)
		auth.POST("/favorites/:id/log", api.LogFavorite)

		auth.GET("/settings", api.GetSettings)
		auth.PUT("/settings", api.UpdateSettings)

		auth.POST("/water", api.AdjustWater)
		auth.PUT("/mood", api.SetMood)

		auth.POST("/vision", api.EstimateFromImage)
		auth.GET("/barcode/:code", api.LookupBarcode)

		auth.GET("/ws", api.ServeRealtime)
	}

	return r
}
