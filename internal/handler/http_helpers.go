package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDContextKey = "userID"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// pathID 读取路径中的字符串 ID，为空时直接返回 400
func pathID(c *gin.Context, key, message string) (string, bool) {
	id := strings.TrimSpace(c.Param(key))
	if id == "" {
		respondError(c, http.StatusBadRequest, message)
		return "", false
	}
	return id, true
}

// currentUserID 返回 UserRequired 中间件写入的用户 ID
func currentUserID(c *gin.Context) uint {
	return c.GetUint(userIDContextKey)
}
