package service

import (
	"testing"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectTransaction(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	m := createModel(t, db, "frank")
	wallet := createWallet(t, db, domain.OwnerModel, m.ID, func(w *models.Wallet) {
		w.TotalBalanceCents = 12000
	})

	tx := &models.Transaction{
		Identifier:  domain.TxWithdraw,
		Status:      domain.TxStatusPending,
		AmountCents: 5000,
		ModelID:     &m.ID,
	}
	require.NoError(t, db.Create(tx).Error)

	got, err := ledger.RejectTransaction(tx.ID, "identity document expired", admin.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.TxStatusRejected, got.Status)
	assert.Equal(t, "identity document expired", got.RejectReason)
	assert.Equal(t, domain.DecisionRejected, got.Decision)
	require.NotNil(t, got.ProcessedByID)
	assert.Equal(t, admin.ID, *got.ProcessedByID)
	assert.NotNil(t, got.ProcessedAt)

	after := reloadWallet(t, db, wallet.ID)
	assert.Equal(t, int64(12000), after.TotalBalanceCents, "rejection must never touch the wallet")
	assert.Zero(t, after.TotalWithdrawCents)
	assert.Equal(t, int64(1), countAuditLogs(t, db, ActionRejectTransaction, domain.AuditSuccess))
}

func TestRejectTransaction_Validation(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)

	t.Run("zero id", func(t *testing.T) {
		_, err := ledger.RejectTransaction(0, "nope", admin.ID)
		require.ErrorIs(t, err, ErrMissingID)
	})
	t.Run("unknown id", func(t *testing.T) {
		_, err := ledger.RejectTransaction(4242, "nope", admin.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("already rejected", func(t *testing.T) {
		m := createModel(t, db, "gina")
		tx := &models.Transaction{
			Identifier:  domain.TxWithdraw,
			Status:      domain.TxStatusRejected,
			AmountCents: 1000,
			ModelID:     &m.ID,
		}
		require.NoError(t, db.Create(tx).Error)
		_, err := ledger.RejectTransaction(tx.ID, "again", admin.ID)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestRejectTransaction_ExpiresPendingSubscription(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	c := createCustomer(t, db, "hana")
	wallet := createWallet(t, db, domain.OwnerCustomer, c.ID, func(w *models.Wallet) {
		w.TotalBalanceCents = 30000
	})

	plan := &models.SubscriptionPlan{Name: "silver", PriceCents: 10000, DurationDays: 30, IsActive: true}
	require.NoError(t, db.Create(plan).Error)

	tx := &models.Transaction{
		Identifier:  domain.TxRecharge,
		Status:      domain.TxStatusPending,
		AmountCents: 10000,
		CustomerID:  &c.ID,
	}
	require.NoError(t, db.Create(tx).Error)

	sub := &models.Subscription{
		CustomerID:    c.ID,
		PlanID:        plan.ID,
		TransactionID: &tx.ID,
		Status:        domain.SubscriptionPendingPayment,
	}
	require.NoError(t, db.Create(sub).Error)
	require.NoError(t, db.Create(&models.SubscriptionHistory{
		SubscriptionID: sub.ID,
		Status:         domain.SubscriptionPendingPayment,
	}).Error)

	_, err := ledger.RejectTransaction(tx.ID, "card declined", admin.ID)
	require.NoError(t, err)

	var reloaded models.Subscription
	require.NoError(t, db.First(&reloaded, sub.ID).Error)
	assert.Equal(t, domain.SubscriptionExpired, reloaded.Status)
	assert.Nil(t, reloaded.StartDate, "an expired subscription never started")

	var histories []models.SubscriptionHistory
	require.NoError(t, db.Where("subscription_id = ?", sub.ID).Order("id").Find(&histories).Error)
	require.Len(t, histories, 2)
	assert.Equal(t, domain.SubscriptionExpired, histories[0].Status)
	assert.Equal(t, domain.SubscriptionExpired, histories[1].Status)

	after := reloadWallet(t, db, wallet.ID)
	assert.Equal(t, int64(30000), after.TotalBalanceCents)
	assert.Zero(t, after.TotalSpendCents, "no money moves on rejection")
}
