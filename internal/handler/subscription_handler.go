package handler

import (
	"net/http"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subRepo *repository.SubscriptionRepository
}

func NewSubscriptionHandler(subRepo *repository.SubscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{subRepo: subRepo}
}

// List handles GET /admin/subscriptions, optionally filtered by status.
func (h *SubscriptionHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.subRepo.List(domain.SubscriptionStatus(c.Query("status")), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subscriptions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": list, "total": total, "page": page, "limit": limit})
}
