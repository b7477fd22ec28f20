package handler

import (
	"net/http"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletRepo *repository.WalletRepository
}

func NewWalletHandler(walletRepo *repository.WalletRepository) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo}
}

// List handles GET /admin/wallets, optionally filtered by owner type.
func (h *WalletHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	owner := domain.OwnerType(c.Query("owner"))
	if owner != "" && !owner.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner type"})
		return
	}
	list, total, err := h.walletRepo.List(owner, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list wallets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": list, "total": total, "page": page, "limit": limit})
}

// Get handles GET /admin/wallets/:id and includes the derived available
// balance alongside the raw counters.
func (h *WalletHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	w, err := h.walletRepo.GetByID(id)
	if err != nil {
		respondNotFoundOr500(c, err, "wallet not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet":                  w,
		"available_balance_cents": w.AvailableBalanceCents(),
	})
}
