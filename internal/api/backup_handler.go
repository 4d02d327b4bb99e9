package api

import (
	"aio-webcare/internal/repository"
	"aio-webcare/internal/service"
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BackupHandler struct {
	Repo    repository.BackupRepository
	Backups *service.BackupService
}

func NewBackupHandler(r repository.BackupRepository, backups *service.BackupService) *BackupHandler {
	return &BackupHandler{Repo: r, Backups: backups}
}

// GetBackups 某個網站的備份紀錄
// @Router /api/v1/websites/:id/backups [get]
func (h *BackupHandler) GetBackups(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	backups, err := h.Repo.ListByWebsite(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": backups})
}

// TriggerBackup 手動觸發備份 (背景執行)
// @Router /api/v1/websites/:id/backups [post]
func (h *BackupHandler) TriggerBackup(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	// 備份可能很久，丟背景做
	go func() {
		if _, err := h.Backups.Run(context.Background(), id, "manual"); err != nil {
			logrus.Errorf("背景備份失敗: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "備份任務已在背景啟動"})
}
