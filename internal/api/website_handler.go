package api

import (
	"aio-webcare/internal/domain"
	"aio-webcare/internal/repository"
	"aio-webcare/internal/service"
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WebsiteHandler struct {
	Repo    repository.WebsiteRepository
	Refresh *service.RefreshService
}

func NewWebsiteHandler(r repository.WebsiteRepository, refresh *service.RefreshService) *WebsiteHandler {
	return &WebsiteHandler{Repo: r, Refresh: refresh}
}

// GetWebsites godoc
// @Summary 獲取網站列表 (支援分頁與排序)
// @Param page query int false "頁碼"
// @Param limit query int false "每頁數量"
// @Param sort query string false "排序欄位 (name_asc / last_sync_desc)"
// @Router /api/v1/websites [get]
func (h *WebsiteHandler) GetWebsites(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	sort := c.Query("sort")

	websites, total, err := h.Repo.List(c.Request.Context(), page, limit, sort)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  websites,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// CreateWebsite 註冊新網站，順便產生 WRM API Key
// @Router /api/v1/websites [post]
func (h *WebsiteHandler) CreateWebsite(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		URL  string `json:"url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	site := domain.Website{
		Name:             req.Name,
		URL:              req.URL,
		WRMAPIKey:        uuid.NewString(), // 網站端 WRM plugin 要填這把 Key
		ConnectionStatus: domain.ConnDisconnected,
		HealthStatus:     domain.HealthWarning,
	}

	id, err := h.Repo.Create(c.Request.Context(), site)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	site.ID = id

	c.JSON(http.StatusCreated, site)
}

// DeleteWebsite 移除網站
// @Router /api/v1/websites/:id [delete]
func (h *WebsiteHandler) DeleteWebsite(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "網站已移除"})
}

// SyncWebsites 手動觸發全量刷新
// @Router /api/v1/websites/sync [post]
func (h *WebsiteHandler) SyncWebsites(c *gin.Context) {
	// 在背景執行刷新，不阻塞 HTTP Response
	go func() {
		if err := h.Refresh.RefreshAll(context.Background()); err != nil {
			logrus.Errorf("背景刷新失敗: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "刷新任務已在背景啟動"})
}

// GetWebsiteUpdates 單一網站的更新狀態
// @Router /api/v1/websites/:id/updates [get]
func (h *WebsiteHandler) GetWebsiteUpdates(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	site, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到這個網站"})
		return
	}

	updates := h.Refresh.GetUpdates(c.Request.Context(), *site)
	c.JSON(http.StatusOK, updates)
}
