package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallwins/internal/service"
)

type visionPayload struct {
	ImageBase64 string `json:"image_base64"`
	Filename    string `json:"filename"`
}

// EstimateFromImage 根据图片估算营养，只返回候选值，不写入条目
func (a *API) EstimateFromImage(c *gin.Context) {
	var payload visionPayload
	if !bindJSON(c, &payload, "invalid image payload") {
		return
	}

	food, err := a.vision.EstimateBase64(c.Request.Context(), payload.ImageBase64, payload.Filename)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			respondError(c, http.StatusBadRequest, "invalid image")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "failed to estimate image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimate": foodToPayload(food)})
}

// LookupBarcode 按条码返回候选值
func (a *API) LookupBarcode(c *gin.Context) {
	code, ok := pathID(c, "code", "invalid barcode")
	if !ok {
		return
	}

	food, err := a.barcode.Lookup(code)
	if err != nil {
		if errors.Is(err, service.ErrBarcodeNotFound) {
			respondError(c, http.StatusNotFound, "barcode not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to look up barcode")
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimate": foodToPayload(food)})
}

// GetHealth 返回当天活动数据，未登录时也可访问
func (a *API) GetHealth(c *gin.Context) {
	userID, _ := sessionUserID(c)

	summary, err := a.health.Today(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusBadGateway, "health data unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"steps":             summary.Steps,
		"exercise_calories": summary.ExerciseCalories,
		"connected":         summary.Connected,
	})
}
