package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/smallwins/internal/db"
)

const (
	sessionUserIDKey = "user_id"
	sessionEmailKey  = "email"
)

type sessionPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateSession 按邮箱识别用户，新用户会写入默认收藏
func (a *API) CreateSession(c *gin.Context) {
	var payload sessionPayload
	if !bindJSON(c, &payload, "invalid session payload") {
		return
	}

	user, created, err := db.EnsureUser(a.db, payload.Email, payload.Name)
	if err != nil {
		if errors.Is(err, db.ErrEmailRequired) {
			respondError(c, http.StatusBadRequest, "email is required")
			return
		}
		a.logger.Error(c.Request.Context(), "ensure user failed", "error", err)
		respondError(c, http.StatusInternalServerError, "failed to start session")
		return
	}

	if created {
		if err := a.tracker.Favorites().SeedStarters(user.ID); err != nil {
			a.logger.Warn(c.Request.Context(), "seed starter favorites failed", "user_id", user.ID, "error", err)
		}
		a.logger.Info(c.Request.Context(), "user created", "user_id", user.ID)
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionEmailKey, user.Email)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
		"created": created,
	})
}

// DeleteSession 清除会话
func (a *API) DeleteSession(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clear session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"signed_out": true})
}

// UserRequired 要求会话中存在用户，否则返回 401
func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUserID(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "sign in required")
			c.Abort()
			return
		}
		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

func sessionUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	switch v := session.Get(sessionUserIDKey).(type) {
	case uint:
		return v, v > 0
	case int:
		return uint(v), v > 0
	case int64:
		return uint(v), v > 0
	case uint64:
		return uint(v), v > 0
	default:
		return 0, false
	}
}
