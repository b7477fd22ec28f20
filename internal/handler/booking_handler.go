package handler

import (
	"net/http"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingRepo *repository.BookingRepository
}

func NewBookingHandler(bookingRepo *repository.BookingRepository) *BookingHandler {
	return &BookingHandler{bookingRepo: bookingRepo}
}

// List handles GET /admin/bookings, optionally filtered by status.
func (h *BookingHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.bookingRepo.List(domain.BookingStatus(c.Query("status")), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "total": total, "page": page, "limit": limit})
}

// Get handles GET /admin/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	b, err := h.bookingRepo.GetByID(id)
	if err != nil {
		respondNotFoundOr500(c, err, "booking not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}
