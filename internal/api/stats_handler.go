package api

import (
	"aio-webcare/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Refresh *service.RefreshService
}

func NewStatsHandler(refresh *service.RefreshService) *StatsHandler {
	return &StatsHandler{Refresh: refresh}
}

// GetStats godoc
// @Summary 儀表板總覽數據 (快取優先)
// @Tags stats
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.Refresh.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
