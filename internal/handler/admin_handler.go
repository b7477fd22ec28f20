package handler

import (
	"net/http"

	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminRepo    *repository.AdminRepository
	modelRepo    *repository.ModelRepository
	customerRepo *repository.CustomerRepository
	settingRepo  *repository.SettingRepository
	referralRepo *repository.ReferralRepository
	outboxRepo   *repository.OutboxRepository
}

func NewAdminHandler(adminRepo *repository.AdminRepository, modelRepo *repository.ModelRepository, customerRepo *repository.CustomerRepository, settingRepo *repository.SettingRepository, referralRepo *repository.ReferralRepository, outboxRepo *repository.OutboxRepository) *AdminHandler {
	return &AdminHandler{
		adminRepo:    adminRepo,
		modelRepo:    modelRepo,
		customerRepo: customerRepo,
		settingRepo:  settingRepo,
		referralRepo: referralRepo,
		outboxRepo:   outboxRepo,
	}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ListModels handles GET /admin/models.
func (h *AdminHandler) ListModels(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.modelRepo.List(c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list models"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": list, "total": total, "page": page, "limit": limit})
}

// GetModel handles GET /admin/models/:id.
func (h *AdminHandler) GetModel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	m, err := h.modelRepo.GetByID(id)
	if err != nil {
		respondNotFoundOr500(c, err, "model not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"model": m})
}

// ListCustomers handles GET /admin/customers.
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.customerRepo.List(c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": list, "total": total, "page": page, "limit": limit})
}

// GetCustomer handles GET /admin/customers/:id.
func (h *AdminHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cust, err := h.customerRepo.GetByID(id)
	if err != nil {
		respondNotFoundOr500(c, err, "customer not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": cust})
}

// ListSettings handles GET /admin/settings.
func (h *AdminHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSetting handles PUT /admin/settings.
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var req struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settingRepo.Set(req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "setting saved"})
}

// ListReferrals handles GET /admin/referrals.
func (h *AdminHandler) ListReferrals(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.referralRepo.List(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list referrals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"referrals": list, "total": total, "page": page, "limit": limit})
}

// ListOutboxEvents handles GET /admin/outbox, for operational inspection of
// pending and failed side effects.
func (h *AdminHandler) ListOutboxEvents(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.outboxRepo.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list outbox events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": list, "total": total, "page": page, "limit": limit})
}
