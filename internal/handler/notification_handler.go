package handler

import (
	"net/http"

	"github.com/xaosao/xaosao-admin-sub001/internal/repository"
	"github.com/xaosao/xaosao-admin-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifRepo *repository.NotificationRepository
	notifier  *service.NotificationService
}

func NewNotificationHandler(notifRepo *repository.NotificationRepository, notifier *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifRepo: notifRepo, notifier: notifier}
}

// List handles GET /admin/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.notifRepo.List(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "total": total, "page": page, "limit": limit})
}

// Broadcast handles POST /admin/notifications/broadcast, fanning a message out
// to the named models and customers.
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req struct {
		Type        string `json:"type" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Body        string `json:"body" binding:"required"`
		ModelIDs    []uint `json:"model_ids"`
		CustomerIDs []uint `json:"customer_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.ModelIDs) == 0 && len(req.CustomerIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one recipient required"})
		return
	}
	sent, err := h.notifier.Broadcast(c.Request.Context(), req.Type, req.Title, req.Body, req.ModelIDs, req.CustomerIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "broadcast failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "broadcast sent", "count": sent})
}
