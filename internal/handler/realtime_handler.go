package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/smallwins/internal/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeRealtime 升级为 websocket，先推送一次当天视图，之后随每次变更推送
func (a *API) ServeRealtime(c *gin.Context) {
	userID := currentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Warn(c.Request.Context(), "websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	ctx := c.Request.Context()
	a.hub.Serve(realtime.NewClient(userID, conn), func() {
		today, err := a.tracker.Today(ctx, userID)
		if err != nil {
			a.logger.Warn(ctx, "initial realtime snapshot failed", "user_id", userID, "error", err)
			return
		}
		a.publishToday(ctx, userID, today)
	})
}
