package service

import (
	"testing"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveTransaction_RechargeCreatesWallet(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	m := createModel(t, db, "alice")

	tx := &models.Transaction{
		Identifier:  domain.TxRecharge,
		Status:      domain.TxStatusPending,
		AmountCents: 25000,
		ModelID:     &m.ID,
	}
	require.NoError(t, db.Create(tx).Error)

	got, err := ledger.ApproveTransaction(tx.ID, admin.ID, domain.OwnerModel)
	require.NoError(t, err)

	assert.Equal(t, domain.TxStatusApproved, got.Status)
	assert.Equal(t, domain.DecisionApproved, got.Decision)
	require.NotNil(t, got.ProcessedByID)
	assert.Equal(t, admin.ID, *got.ProcessedByID)
	assert.NotNil(t, got.ProcessedAt)

	var w models.Wallet
	require.NoError(t, db.Where("model_id = ?", m.ID).First(&w).Error)
	assert.Equal(t, int64(25000), w.TotalBalanceCents)
	assert.Equal(t, int64(25000), w.TotalRechargeCents)

	var outbox int64
	db.Model(&models.OutboxEvent{}).Where("topic = ?", models.OutboxTopicNotification).Count(&outbox)
	assert.Equal(t, int64(1), outbox, "approval must enqueue a notification")
	assert.Equal(t, int64(1), countAuditLogs(t, db, ActionApproveTransaction, domain.AuditSuccess))
}

func TestApproveTransaction_InsufficientBalanceLeavesWalletUnchanged(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	m := createModel(t, db, "bob")
	wallet := createWallet(t, db, domain.OwnerModel, m.ID, func(w *models.Wallet) {
		w.TotalBalanceCents = 10000
		w.TotalWithdrawCents = 5000
	})

	tx := &models.Transaction{
		Identifier:  domain.TxWithdraw,
		Status:      domain.TxStatusPending,
		AmountCents: 8000, // only 5000 available
		ModelID:     &m.ID,
	}
	require.NoError(t, db.Create(tx).Error)

	_, err := ledger.ApproveTransaction(tx.ID, admin.ID, domain.OwnerModel)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	after := reloadWallet(t, db, wallet.ID)
	assert.Equal(t, int64(10000), after.TotalBalanceCents)
	assert.Equal(t, int64(5000), after.TotalWithdrawCents)

	reloaded := reloadTransaction(t, db, tx.ID)
	assert.Equal(t, domain.TxStatusPending, reloaded.Status, "failed approval must not advance the transaction")
	assert.Equal(t, int64(1), countAuditLogs(t, db, ActionApproveTransaction, domain.AuditFailed))
}

func TestApproveTransaction_AlreadyApproved(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	m := createModel(t, db, "carol")
	wallet := createWallet(t, db, domain.OwnerModel, m.ID, func(w *models.Wallet) {
		w.TotalBalanceCents = 9000
	})

	tx := &models.Transaction{
		Identifier:  domain.TxRecharge,
		Status:      domain.TxStatusApproved,
		AmountCents: 9000,
		ModelID:     &m.ID,
	}
	require.NoError(t, db.Create(tx).Error)

	_, err := ledger.ApproveTransaction(tx.ID, admin.ID, domain.OwnerModel)
	require.ErrorIs(t, err, ErrAlreadyApproved)

	after := reloadWallet(t, db, wallet.ID)
	assert.Equal(t, int64(9000), after.TotalBalanceCents, "second approval must not double-credit")
}

func TestApproveTransaction_Validation(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	c := createCustomer(t, db, "dave")

	tx := &models.Transaction{
		Identifier:  domain.TxRecharge,
		Status:      domain.TxStatusPending,
		AmountCents: 1000,
		CustomerID:  &c.ID,
	}
	require.NoError(t, db.Create(tx).Error)

	t.Run("invalid owner type", func(t *testing.T) {
		_, err := ledger.ApproveTransaction(tx.ID, admin.ID, "staff")
		require.ErrorIs(t, err, ErrInvalidOwnerType)
	})
	t.Run("owner side not present on transaction", func(t *testing.T) {
		_, err := ledger.ApproveTransaction(tx.ID, admin.ID, domain.OwnerModel)
		require.ErrorIs(t, err, ErrMissingOwner)
	})
	t.Run("unknown transaction", func(t *testing.T) {
		_, err := ledger.ApproveTransaction(99999, admin.ID, domain.OwnerCustomer)
		require.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("rejected transaction cannot be approved", func(t *testing.T) {
		dead := &models.Transaction{
			Identifier:  domain.TxRecharge,
			Status:      domain.TxStatusRejected,
			AmountCents: 1000,
			CustomerID:  &c.ID,
		}
		require.NoError(t, db.Create(dead).Error)
		_, err := ledger.ApproveTransaction(dead.ID, admin.ID, domain.OwnerCustomer)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestApproveTransaction_ActivatesPendingSubscription(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	c := createCustomer(t, db, "erin")
	wallet := createWallet(t, db, domain.OwnerCustomer, c.ID, func(w *models.Wallet) {
		w.TotalBalanceCents = 50000
	})

	plan := &models.SubscriptionPlan{Name: "gold", PriceCents: 20000, DurationDays: 30, IsActive: true}
	require.NoError(t, db.Create(plan).Error)

	tx := &models.Transaction{
		Identifier:  domain.TxRecharge,
		Status:      domain.TxStatusPending,
		AmountCents: 20000,
		CustomerID:  &c.ID,
		Reason:      "gold plan purchase",
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
		Note:           "awaiting payment",
	}).Error)

	_, err := ledger.ApproveTransaction(tx.ID, admin.ID, domain.OwnerCustomer)
	require.NoError(t, err)

	var reloaded models.Subscription
	require.NoError(t, db.First(&reloaded, sub.ID).Error)
	assert.Equal(t, domain.SubscriptionActive, reloaded.Status)
	require.NotNil(t, reloaded.StartDate)
	require.NotNil(t, reloaded.EndDate)
	assert.WithinDuration(t, reloaded.StartDate.AddDate(0, 0, 30), *reloaded.EndDate, time.Second)

	after := reloadWallet(t, db, wallet.ID)
	assert.Equal(t, int64(50000+20000), after.TotalBalanceCents, "recharge credited")
	assert.Equal(t, int64(20000), after.TotalSpendCents, "plan price deducted as spend")

	var histories []models.SubscriptionHistory
	require.NoError(t, db.Where("subscription_id = ?", sub.ID).Order("id").Find(&histories).Error)
	require.Len(t, histories, 2)
	assert.Equal(t, domain.SubscriptionActive, histories[0].Status, "pending history row updated in place")
	assert.Equal(t, domain.SubscriptionActive, histories[1].Status)

	var events int64
	db.Model(&models.OutboxEvent{}).Where("topic = ?", models.OutboxTopicSubscriptionEvent).Count(&events)
	assert.Equal(t, int64(1), events, "activation must enqueue a subscription event")
}
