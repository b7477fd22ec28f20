package handler

import (
	"net/http"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditRepo *repository.AuditLogRepository
}

func NewAuditHandler(auditRepo *repository.AuditLogRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// List handles GET /admin/audit-logs, filterable by action and outcome.
func (h *AuditHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.auditRepo.List(c.Query("action"), domain.AuditStatus(c.Query("status")), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": list, "total": total, "page": page, "limit": limit})
}
