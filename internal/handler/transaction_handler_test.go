package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xaosao/xaosao-admin-sub001/internal/database"
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"
	"github.com/xaosao/xaosao-admin-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	ledger := service.NewLedgerService(db, nil, nil)
	h := NewTransactionHandler(repository.NewTransactionRepository(db), ledger)

	r := gin.New()
	// Stand-in for AuthRequired: the workflows only need a user id.
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
	})
	r.GET("/admin/transactions", h.List)
	r.GET("/admin/transactions/:id", h.Get)
	r.POST("/admin/transactions/:id/approve", h.Approve)
	r.POST("/admin/transactions/:id/reject", h.Reject)
	r.POST("/admin/transactions/:id/refund", h.Refund)
	r.POST("/admin/transactions/:id/complete", h.Complete)
	return r, db
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTransactionHandler_ApproveAndReject(t *testing.T) {
	r, db := setupHandlerTest(t)

	m := &models.Model{DisplayName: "hm", Email: "hm@example.com"}
	require.NoError(t, db.Create(m).Error)
	tx := &models.Transaction{
		Identifier:  domain.TxRecharge,
		Status:      domain.TxStatusPending,
		AmountCents: 5000,
		ModelID:     &m.ID,
	}
	require.NoError(t, db.Create(tx).Error)

	t.Run("approve", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/admin/transactions/%d/approve", tx.ID), gin.H{"type": "model"})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("approve again conflicts", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/admin/transactions/%d/approve", tx.ID), gin.H{"type": "model"})
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("reject terminal transaction conflicts", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/admin/transactions/%d/reject", tx.ID), gin.H{"reason": "oops"})
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("missing body fields", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, fmt.Sprintf("/admin/transactions/%d/approve", tx.ID), gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown transaction is 404", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/admin/transactions/99999/approve", gin.H{"type": "model"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id is 400", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/admin/transactions/abc/approve", gin.H{"type": "model"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransactionHandler_List(t *testing.T) {
	r, db := setupHandlerTest(t)

	c := &models.Customer{Username: "hc", Email: "hc@example.com"}
	require.NoError(t, db.Create(c).Error)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Transaction{
			Identifier:  domain.TxRecharge,
			Status:      domain.TxStatusPending,
			AmountCents: int64(1000 * (i + 1)),
			CustomerID:  &c.ID,
		}).Error)
	}

	w := doJSON(r, http.MethodGet, "/admin/transactions?status=pending&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
		Total        int64                `json:"total"`
		Page         int                  `json:"page"`
		Limit        int                  `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Transactions, 2)
	assert.Equal(t, 2, resp.Limit)
}

func TestTransactionHandler_RefundMissingBooking(t *testing.T) {
	r, db := setupHandlerTest(t)

	c := &models.Customer{Username: "hr", Email: "hr@example.com"}
	require.NoError(t, db.Create(c).Error)
	hold := &models.Transaction{
		Identifier:  domain.TxBookingHold,
		Status:      domain.TxStatusHeld,
		AmountCents: -7000,
		CustomerID:  &c.ID,
		Reason:      "no parsable reference",
	}
	require.NoError(t, db.Create(hold).Error)

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/admin/transactions/%d/refund", hold.ID), gin.H{"reason": "test"})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}
