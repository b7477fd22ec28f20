package handler

import (
	"net/http"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/middleware"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"
	"github.com/xaosao/xaosao-admin-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	txRepo *repository.TransactionRepository
	ledger *service.LedgerService
}

func NewTransactionHandler(txRepo *repository.TransactionRepository, ledger *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{txRepo: txRepo, ledger: ledger}
}

// List handles GET /admin/transactions with search, status, identifier,
// owner and date-range filters.
func (h *TransactionHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.TransactionFilter{
		Search:     c.Query("search"),
		Status:     domain.TransactionStatus(c.Query("status")),
		Identifier: domain.TransactionIdentifier(c.Query("identifier")),
	}
	if id, err := parseUintQuery(c, "modelId"); err == nil {
		f.ModelID = id
	}
	if id, err := parseUintQuery(c, "customerId"); err == nil {
		f.CustomerID = id
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			f.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.AddDate(0, 0, 1).Add(-time.Second)
			f.To = &end
		}
	}

	list, total, err := h.txRepo.List(f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transactions": list,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// Get handles GET /admin/transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	t, err := h.txRepo.GetByID(id)
	if err != nil {
		respondNotFoundOr500(c, err, "transaction not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": t})
}

// Approve handles POST /admin/transactions/:id/approve. The body names which
// wallet side the transaction settles against.
func (h *TransactionHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.ledger.ApproveTransaction(id, middleware.GetUserID(c), domain.OwnerType(req.Type))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction approved", "transaction": t})
}

// Reject handles POST /admin/transactions/:id/reject.
func (h *TransactionHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.ledger.RejectTransaction(id, req.Reason, middleware.GetUserID(c))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction rejected", "transaction": t})
}

// Refund handles POST /admin/transactions/:id/refund for held booking payments.
func (h *TransactionHandler) Refund(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	res, err := h.ledger.RefundHeldTransaction(id, middleware.GetUserID(c), req.Reason)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hold refunded", "result": res})
}

// Complete handles POST /admin/transactions/:id/complete, releasing a held
// booking payment to the model.
func (h *TransactionHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	res, err := h.ledger.CompleteHeldTransaction(id, middleware.GetUserID(c))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking completed", "result": res})
}
