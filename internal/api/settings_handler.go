package api

import (
	"aio-webcare/internal/domain"
	"aio-webcare/internal/repository"
	"aio-webcare/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Repo     repository.SettingsRepository
	Notifier *service.NotifierService
}

func NewSettingsHandler(r repository.SettingsRepository, notifier *service.NotifierService) *SettingsHandler {
	return &SettingsHandler{Repo: r, Notifier: notifier}
}

// GetSettings 讀取系統設定 (告警 + 品牌)
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// SaveSettings 儲存系統設定
// @Router /api/v1/settings [post]
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var settings domain.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	if err := h.Repo.Save(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "設定已儲存"})
}

// TestWebhook 發測試訊息確認 Webhook 有接通
// @Router /api/v1/settings/test [post]
func (h *SettingsHandler) TestWebhook(c *gin.Context) {
	var req struct {
		WebhookURL string `json:"webhook_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	if err := h.Notifier.SendTestMessage(c.Request.Context(), req.WebhookURL); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Webhook 測試失敗: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "測試訊息已送出"})
}
