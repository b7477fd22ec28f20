package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"gorm.io/gorm"
)

// RefundResult reports what a refund moved.
type RefundResult struct {
	Transaction       *models.Transaction `json:"transaction"`
	RefundTransaction *models.Transaction `json:"refund_transaction"`
	RefundCents       int64               `json:"refund_cents"`
	BookingID         uint                `json:"booking_id"`
}

// RefundHeldTransaction returns a held booking escrow to the customer. The
// refund is tracked in totalRefunded, not reversed into balance/spend. If the
// booking had already been confirmed, the pending model earning is also marked
// refunded and the model's totalPending reduced by its net amount.
func (s *LedgerService) RefundHeldTransaction(txID, approverID uint, reason string) (*RefundResult, error) {
	res := &RefundResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transactions := repository.NewTransactionRepository(tx)
		wallets := repository.NewWalletRepository(tx)
		bookings := repository.NewBookingRepository(tx)

		t, err := transactions.GetByID(txID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if t.Identifier != domain.TxBookingHold {
			return ErrNotHoldTransaction
		}
		if t.Status == domain.TxStatusRefunded {
			return ErrAlreadyRefunded
		}

		booking, err := resolveBooking(tx, t)
		if err != nil {
			return err
		}
		// Compensation path: a hold that already left "held" can only be
		// refunded while the booking sits in confirmed or disputed.
		if t.Status != domain.TxStatusHeld && !booking.Status.AllowsCompensation() {
			return ErrInvalidBookingState
		}

		customerID := booking.CustomerID
		if t.CustomerID != nil {
			customerID = *t.CustomerID
		}
		if _, err := repository.NewCustomerRepository(tx).GetByID(customerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMissingCustomer
			}
			return err
		}
		wallet, err := wallets.GetByOwner(domain.OwnerCustomer, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMissingWallet
			}
			return err
		}

		refundCents := t.AbsAmountCents()
		now := time.Now()
		t.Status = domain.TxStatusRefunded
		t.ProcessedByID = &approverID
		t.ProcessedAt = &now
		if reason != "" {
			t.RejectReason = reason
		}
		if err := transactions.Update(t); err != nil {
			return err
		}

		refundTx := &models.Transaction{
			Identifier:    domain.TxBookingRefund,
			Status:        domain.TxStatusApproved,
			AmountCents:   refundCents,
			CustomerID:    &customerID,
			BookingID:     &booking.ID,
			Reason:        fmt.Sprintf("refund for booking #%s", booking.Reference),
			ProcessedByID: &approverID,
			Decision:      domain.DecisionApproved,
			ProcessedAt:   &now,
		}
		if err := transactions.Create(refundTx); err != nil {
			return err
		}

		wallet.TotalRefundedCents += refundCents
		if err := wallets.Update(wallet); err != nil {
			return err
		}

		booking.PaymentStatus = domain.PaymentRefunded
		if err := bookings.Update(booking); err != nil {
			return err
		}

		// A confirmed booking already has a pending earning transaction;
		// unwind it so the model's pending total stays truthful.
		if booking.ReleaseTransactionID != nil {
			if err := s.refundPendingEarning(tx, booking, approverID); err != nil {
				return err
			}
		}

		res.Transaction = t
		res.RefundTransaction = refundTx
		res.RefundCents = refundCents
		res.BookingID = booking.ID

		return enqueueNotification(tx, NotificationEvent{
			Kind:          NotifyBookingRefunded,
			TransactionID: t.ID,
			CustomerID:    &customerID,
			ModelID:       &booking.ModelID,
			BookingID:     &booking.ID,
			AmountCents:   refundCents,
			Reason:        reason,
		})
	})

	snapshot := map[string]interface{}{"transaction_id": txID, "reason": reason}
	if err == nil {
		snapshot["refund_cents"] = res.RefundCents
		snapshot["booking_id"] = res.BookingID
	}
	s.audit(approverID, ActionRefundBookingHold, "refund held booking transaction", err, snapshot)
	if err != nil {
		return nil, err
	}
	s.broadcast("booking_refunded", snapshot)
	return res, nil
}

func (s *LedgerService) refundPendingEarning(tx *gorm.DB, booking *models.ServiceBooking, approverID uint) error {
	transactions := repository.NewTransactionRepository(tx)
	earning, err := transactions.GetByID(*booking.ReleaseTransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if earning.Status == domain.TxStatusRefunded {
		return nil
	}
	now := time.Now()
	earning.Status = domain.TxStatusRefunded
	earning.ProcessedByID = &approverID
	earning.ProcessedAt = &now
	if err := transactions.Update(earning); err != nil {
		return err
	}

	wallets := repository.NewWalletRepository(tx)
	wallet, err := wallets.GetOrCreate(domain.OwnerModel, booking.ModelID)
	if err != nil {
		return err
	}
	wallet.TotalPendingCents -= earning.AbsAmountCents()
	return wallets.Update(wallet)
}
