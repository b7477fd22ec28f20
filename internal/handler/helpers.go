package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/xaosao/xaosao-admin-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// respondWorkflowError maps ledger validation errors to the right status code.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrMissingBooking),
		errors.Is(err, service.ErrMissingCustomer), errors.Is(err, service.ErrMissingWallet):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyApproved), errors.Is(err, service.ErrAlreadyRefunded),
		errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrInvalidBookingState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

func parseUintQuery(c *gin.Context, key string) (uint, error) {
	v := c.Query(key)
	if v == "" {
		return 0, errors.New("missing")
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func respondNotFoundOr500(c *gin.Context, err error, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
}
