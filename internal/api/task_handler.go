package api

import (
	"aio-webcare/internal/domain"
	"aio-webcare/internal/repository"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	Repo repository.TaskRepository
}

func NewTaskHandler(r repository.TaskRepository) *TaskHandler {
	return &TaskHandler{Repo: r}
}

// GetTasks 待辦列表，可用 website_id / status 過濾
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.Repo.List(c.Request.Context(), c.Query("website_id"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tasks})
}

// CreateTask 新增待辦
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req struct {
		WebsiteID string `json:"website_id"`
		Title     string `json:"title" binding:"required"`
		Type      string `json:"type" binding:"required,oneof=update backup security other"`
		DueDate   string `json:"due_date"` // RFC3339，可不填
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的請求格式"})
		return
	}

	task := domain.Task{
		Title: req.Title,
		Type:  req.Type,
	}

	if req.WebsiteID != "" {
		oid, err := primitive.ObjectIDFromHex(req.WebsiteID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "無效的網站 ID"})
			return
		}
		task.WebsiteID = oid
	}

	if req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "日期格式要是 RFC3339"})
			return
		}
		task.DueDate = due
	}

	id, err := h.Repo.Create(c.Request.Context(), task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	task.ID = id

	c.JSON(http.StatusCreated, task)
}

// CompleteTask 標記完成
// @Router /api/v1/tasks/:id/complete [patch]
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	if err := h.Repo.MarkCompleted(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已完成"})
}

// DeleteTask 刪除待辦
// @Router /api/v1/tasks/:id [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已刪除"})
}
