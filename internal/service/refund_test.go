package service

import (
	"testing"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefundHeldTransaction(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	fx := createBookingFixture(t, db, 30000, 15, "rf-1")

	res, err := ledger.RefundHeldTransaction(fx.Hold.ID, admin.ID, "model no-show")
	require.NoError(t, err)

	assert.Equal(t, int64(30000), res.RefundCents, "refund is the hold's magnitude")
	assert.Equal(t, fx.Booking.ID, res.BookingID)
	require.NotNil(t, res.RefundTransaction)
	assert.Equal(t, domain.TxBookingRefund, res.RefundTransaction.Identifier)
	assert.Equal(t, domain.TxStatusApproved, res.RefundTransaction.Status)

	hold := reloadTransaction(t, db, fx.Hold.ID)
	assert.Equal(t, domain.TxStatusRefunded, hold.Status)
	assert.Equal(t, "model no-show", hold.RejectReason)

	wallet := reloadWallet(t, db, fx.Wallet.ID)
	assert.Equal(t, int64(30000), wallet.TotalRefundedCents, "refund lands in totalRefunded")
	assert.Equal(t, int64(60000), wallet.TotalBalanceCents, "balance itself is untouched")
	assert.Equal(t, int64(30000), wallet.TotalSpendCents, "spend is not reversed")
	assert.Equal(t, int64(60000), wallet.AvailableBalanceCents(), "refund restores availability")

	var booking models.ServiceBooking
	require.NoError(t, db.First(&booking, fx.Booking.ID).Error)
	assert.Equal(t, domain.PaymentRefunded, booking.PaymentStatus)
}

func TestRefundHeldTransaction_DoubleRefund(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	fx := createBookingFixture(t, db, 30000, 15, "rf-2")

	_, err := ledger.RefundHeldTransaction(fx.Hold.ID, admin.ID, "first")
	require.NoError(t, err)

	_, err = ledger.RefundHeldTransaction(fx.Hold.ID, admin.ID, "second")
	require.ErrorIs(t, err, ErrAlreadyRefunded)

	assert.Equal(t, int64(1), countTransactions(t, db, domain.TxBookingRefund), "only one refund row may exist")
	wallet := reloadWallet(t, db, fx.Wallet.ID)
	assert.Equal(t, int64(30000), wallet.TotalRefundedCents, "second attempt must not double-refund")
}

func TestRefundHeldTransaction_Validation(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := ledger.RefundHeldTransaction(31337, admin.ID, "")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-hold transaction", func(t *testing.T) {
		m := createModel(t, db, "ivy")
		tx := &models.Transaction{
			Identifier:  domain.TxRecharge,
			Status:      domain.TxStatusPending,
			AmountCents: 1000,
			ModelID:     &m.ID,
		}
		require.NoError(t, db.Create(tx).Error)
		_, err := ledger.RefundHeldTransaction(tx.ID, admin.ID, "")
		require.ErrorIs(t, err, ErrNotHoldTransaction)
	})

	t.Run("released hold on a cancelled booking", func(t *testing.T) {
		fx := createBookingFixture(t, db, 20000, 10, "rf-3")
		require.NoError(t, db.Model(fx.Hold).Update("status", domain.TxStatusReleased).Error)
		require.NoError(t, db.Model(fx.Booking).Update("status", domain.BookingCancelled).Error)
		_, err := ledger.RefundHeldTransaction(fx.Hold.ID, admin.ID, "")
		require.ErrorIs(t, err, ErrInvalidBookingState)
	})

	t.Run("customer wallet missing", func(t *testing.T) {
		fx := createBookingFixture(t, db, 20000, 10, "rf-4")
		require.NoError(t, db.Unscoped().Delete(fx.Wallet).Error)
		_, err := ledger.RefundHeldTransaction(fx.Hold.ID, admin.ID, "")
		require.ErrorIs(t, err, ErrMissingWallet)
	})
}

func TestRefundHeldTransaction_UnwindsPendingEarning(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	admin := createAdmin(t, db)
	fx := createBookingFixture(t, db, 50000, 20, "rf-5")

	// Simulate a confirmed booking whose earning was written ahead of release.
	earning := &models.Transaction{
		Identifier:  domain.TxBookingEarning,
		Status:      domain.TxStatusPending,
		AmountCents: 40000,
		ModelID:     &fx.Model.ID,
		BookingID:   &fx.Booking.ID,
	}
	require.NoError(t, db.Create(earning).Error)
	require.NoError(t, db.Model(fx.Booking).Updates(map[string]interface{}{
		"status":                 domain.BookingConfirmed,
		"release_transaction_id": earning.ID,
	}).Error)
	modelWallet := createWallet(t, db, domain.OwnerModel, fx.Model.ID, func(w *models.Wallet) {
		w.TotalPendingCents = 40000
	})

	_, err := ledger.RefundHeldTransaction(fx.Hold.ID, admin.ID, "dispute resolved for customer")
	require.NoError(t, err)

	reloadedEarning := reloadTransaction(t, db, earning.ID)
	assert.Equal(t, domain.TxStatusRefunded, reloadedEarning.Status)

	after := reloadWallet(t, db, modelWallet.ID)
	assert.Zero(t, after.TotalPendingCents, "pending earning must be unwound")
	assert.Zero(t, after.TotalBalanceCents, "nothing may be credited to the model")
}
