package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"gorm.io/gorm"
)

// CompletionResult reports the commission split and any referral payout.
type CompletionResult struct {
	Transaction        *models.Transaction `json:"transaction"`
	EarningTransaction *models.Transaction `json:"earning_transaction"`
	BookingID          uint                `json:"booking_id"`
	TotalCents         int64               `json:"total_cents"`
	CommissionCents    int64               `json:"commission_cents"`
	NetCents           int64               `json:"net_cents"`
	ReferrerModelID    *uint               `json:"referrer_model_id,omitempty"`
	ReferralCents      int64               `json:"referral_cents,omitempty"`
}

// CompleteHeldTransaction releases a booking escrow to the model: the platform
// keeps floor(total*rate/100) commission, the model is credited the net and
// their pending total reduced. The referral cascade and completion
// notification run after commit and never fail the release.
func (s *LedgerService) CompleteHeldTransaction(txID, approverID uint) (*CompletionResult, error) {
	res := &CompletionResult{}
	var booking *models.ServiceBooking
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

		booking, err = resolveBooking(tx, t)
		if err != nil {
			return err
		}
		if t.Status != domain.TxStatusHeld && !booking.Status.AllowsCompensation() {
			return ErrInvalidBookingState
		}

		total := t.AbsAmountCents()
		commission, net := SplitCommission(total, booking.ModelService.Service.CommissionPercent)

		now := time.Now()
		t.Status = domain.TxStatusReleased
		t.CommissionCents = commission
		t.ProcessedByID = &approverID
		t.Decision = domain.DecisionApproved
		t.ProcessedAt = &now
		if err := transactions.Update(t); err != nil {
			return err
		}

		earning, err := s.settleEarning(tx, booking, net, commission, approverID, now)
		if err != nil {
			return err
		}

		wallet, err := wallets.GetOrCreate(domain.OwnerModel, booking.ModelID)
		if err != nil {
			return err
		}
		wallet.TotalBalanceCents += net
		wallet.TotalPendingCents -= net
		if err := wallets.Update(wallet); err != nil {
			return err
		}

		booking.Status = domain.BookingCompleted
		booking.PaymentStatus = domain.PaymentReleased
		booking.CompletedAt = &now
		if err := bookings.Update(booking); err != nil {
			return err
		}

		res.Transaction = t
		res.EarningTransaction = earning
		res.BookingID = booking.ID
		res.TotalCents = total
		res.CommissionCents = commission
		res.NetCents = net
		return nil
	})

	snapshot := map[string]interface{}{"transaction_id": txID}
	if err == nil {
		snapshot["booking_id"] = res.BookingID
		snapshot["commission_cents"] = res.CommissionCents
		snapshot["net_cents"] = res.NetCents
	}
	s.audit(approverID, ActionCompleteBooking, "complete held booking transaction", err, snapshot)
	if err != nil {
		return nil, err
	}

	// Best-effort from here on: the release is committed, nothing below may
	// undo or fail it.
	if s.referrals != nil {
		if ref, rerr := s.referrals.ProcessBookingReferralCommission(booking.ModelID, res.TotalCents, booking.ID); rerr != nil {
			log.Printf("[Ledger] referral cascade failed for booking %d: %v", booking.ID, rerr)
		} else if ref.Paid {
			res.ReferrerModelID = &ref.ReferrerModelID
			res.ReferralCents = ref.CommissionCents
		}
	}
	if err := enqueueNotification(s.db, NotificationEvent{
		Kind:            NotifyBookingCompleted,
		TransactionID:   txID,
		ModelID:         &booking.ModelID,
		CustomerID:      &booking.CustomerID,
		BookingID:       &booking.ID,
		AmountCents:     res.NetCents,
		CommissionCents: res.CommissionCents,
		ReferrerModelID: res.ReferrerModelID,
		ReferralCents:   res.ReferralCents,
	}); err != nil {
		log.Printf("[Ledger] failed to enqueue completion notification for booking %d: %v", booking.ID, err)
	}
	s.broadcast("booking_completed", snapshot)
	return res, nil
}

// settleEarning approves the booking's pending earning transaction, or creates
// one when the escrow is released straight from held.
func (s *LedgerService) settleEarning(tx *gorm.DB, booking *models.ServiceBooking, net, commission int64, approverID uint, now time.Time) (*models.Transaction, error) {
	transactions := repository.NewTransactionRepository(tx)
	if booking.ReleaseTransactionID != nil {
		earning, err := transactions.GetByID(*booking.ReleaseTransactionID)
		if err == nil {
			earning.Status = domain.TxStatusApproved
			earning.AmountCents = net
			earning.CommissionCents = commission
			earning.ProcessedByID = &approverID
			earning.Decision = domain.DecisionApproved
			earning.ProcessedAt = &now
			return earning, transactions.Update(earning)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	earning := &models.Transaction{
		Identifier:      domain.TxBookingEarning,
		Status:          domain.TxStatusApproved,
		AmountCents:     net,
		CommissionCents: commission,
		ModelID:         &booking.ModelID,
		BookingID:       &booking.ID,
		Reason:          fmt.Sprintf("earning for booking #%s", booking.Reference),
		ProcessedByID:   &approverID,
		Decision:        domain.DecisionApproved,
		ProcessedAt:     &now,
	}
	if err := transactions.Create(earning); err != nil {
		return nil, err
	}
	booking.ReleaseTransactionID = &earning.ID
	return earning, nil
}
