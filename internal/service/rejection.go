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

// RejectTransaction moves a pending transaction to rejected with a reason.
// A pending_payment subscription referencing the transaction is expired; the
// wallet is never touched.
func (s *LedgerService) RejectTransaction(txID uint, reason string, userID uint) (*models.Transaction, error) {
	if txID == 0 {
		err := ErrMissingID
		s.audit(userID, ActionRejectTransaction, "reject transaction", err, map[string]interface{}{"transaction_id": txID})
		return nil, err
	}

	var t *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transactions := repository.NewTransactionRepository(tx)

		var err error
		t, err = transactions.GetByID(txID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !t.Status.CanTransitionTo(domain.TxStatusRejected) {
			return ErrInvalidTransition
		}

		now := time.Now()
		t.Status = domain.TxStatusRejected
		t.RejectReason = reason
		t.ProcessedByID = &userID
		t.Decision = domain.DecisionRejected
		t.ProcessedAt = &now
		if err := transactions.Update(t); err != nil {
			return err
		}

		if t.CustomerID != nil {
			if err := s.expirePendingSubscription(tx, t); err != nil {
				return err
			}
		}

		return enqueueNotification(tx, NotificationEvent{
			Kind:          NotifyTransactionRejected,
			TransactionID: t.ID,
			ModelID:       t.ModelID,
			CustomerID:    t.CustomerID,
			AmountCents:   t.AmountCents,
			Reason:        reason,
		})
	})

	snapshot := map[string]interface{}{"transaction_id": txID, "reject_reason": reason}
	s.audit(userID, ActionRejectTransaction, "reject transaction", err, snapshot)
	if err != nil {
		return nil, err
	}
	s.broadcast("transaction_rejected", snapshot)
	return t, nil
}

func (s *LedgerService) expirePendingSubscription(tx *gorm.DB, t *models.Transaction) error {
	subscriptions := repository.NewSubscriptionRepository(tx)
	sub, err := subscriptions.GetPendingByTransactionID(t.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	sub.Status = domain.SubscriptionExpired
	if err := subscriptions.Update(sub); err != nil {
		return err
	}
	if err := subscriptions.UpdateHistoryStatus(sub.ID, domain.SubscriptionPendingPayment, domain.SubscriptionExpired); err != nil {
		return err
	}
	return subscriptions.AppendHistory(sub.ID, domain.SubscriptionExpired, fmt.Sprintf("expired on rejection of transaction %d", t.ID))
}
