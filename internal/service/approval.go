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

// ApproveTransaction moves a pending transaction to approved and applies its
// balance effect to the owner's wallet, creating the wallet if it does not
// exist yet. For customers, a pending_payment subscription referencing the
// transaction is activated and its plan price deducted from the wallet.
func (s *LedgerService) ApproveTransaction(txID, approverID uint, owner domain.OwnerType) (*models.Transaction, error) {
	if !owner.Valid() {
		err := ErrInvalidOwnerType
		s.audit(approverID, ActionApproveTransaction, "approve transaction", err, approvalSnapshot(txID, owner, nil))
		return nil, err
	}

	var t *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transactions := repository.NewTransactionRepository(tx)
		wallets := repository.NewWalletRepository(tx)

		var err error
		t, err = transactions.GetByID(txID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if t.Status == domain.TxStatusApproved {
			return ErrAlreadyApproved
		}
		if !t.Status.CanTransitionTo(domain.TxStatusApproved) {
			return ErrInvalidTransition
		}

		ownerID, err := ownerIDFor(t, owner)
		if err != nil {
			return err
		}
		wallet, err := wallets.GetOrCreate(owner, ownerID)
		if err != nil {
			return err
		}
		if err := ApplyBalanceChange(wallet, t.Identifier, t.AmountCents); err != nil {
			return err
		}
		if err := wallets.Update(wallet); err != nil {
			return err
		}

		now := time.Now()
		t.Status = domain.TxStatusApproved
		t.ProcessedByID = &approverID
		t.Decision = domain.DecisionApproved
		t.ProcessedAt = &now
		if err := transactions.Update(t); err != nil {
			return err
		}

		if owner == domain.OwnerCustomer {
			if err := s.activatePendingSubscription(tx, t, wallet); err != nil {
				return err
			}
		}

		return enqueueNotification(tx, NotificationEvent{
			Kind:          NotifyTransactionApproved,
			TransactionID: t.ID,
			ModelID:       t.ModelID,
			CustomerID:    t.CustomerID,
			AmountCents:   t.AmountCents,
		})
	})

	snapshot := approvalSnapshot(txID, owner, t)
	s.audit(approverID, ActionApproveTransaction, "approve transaction", err, snapshot)
	if err != nil {
		return nil, err
	}
	s.broadcast("transaction_approved", snapshot)
	return t, nil
}

// activatePendingSubscription activates the pending_payment subscription tied
// to an approved customer transaction, deducting the plan price and mirroring
// the change into history. Absence of such a subscription is not an error.
func (s *LedgerService) activatePendingSubscription(tx *gorm.DB, t *models.Transaction, wallet *models.Wallet) error {
	subscriptions := repository.NewSubscriptionRepository(tx)
	sub, err := subscriptions.GetPendingByTransactionID(t.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !sub.Status.CanTransitionTo(domain.SubscriptionActive) {
		return ErrInvalidTransition
	}

	wallet.TotalSpendCents += sub.Plan.PriceCents
	if err := repository.NewWalletRepository(tx).Update(wallet); err != nil {
		return err
	}

	now := time.Now()
	end := now.AddDate(0, 0, sub.Plan.DurationDays)
	sub.Status = domain.SubscriptionActive
	sub.StartDate = &now
	sub.EndDate = &end
	if err := subscriptions.Update(sub); err != nil {
		return err
	}
	if err := subscriptions.UpdateHistoryStatus(sub.ID, domain.SubscriptionPendingPayment, domain.SubscriptionActive); err != nil {
		return err
	}
	if err := subscriptions.AppendHistory(sub.ID, domain.SubscriptionActive, fmt.Sprintf("activated on approval of transaction %d", t.ID)); err != nil {
		return err
	}

	return enqueueSubscriptionEvent(tx, SubscriptionEvent{
		CustomerID:     sub.CustomerID,
		SubscriptionID: sub.ID,
		Status:         string(domain.SubscriptionActive),
	})
}

func ownerIDFor(t *models.Transaction, owner domain.OwnerType) (uint, error) {
	switch owner {
	case domain.OwnerModel:
		if t.ModelID == nil {
			return 0, ErrMissingOwner
		}
		return *t.ModelID, nil
	case domain.OwnerCustomer:
		if t.CustomerID == nil {
			return 0, ErrMissingOwner
		}
		return *t.CustomerID, nil
	}
	return 0, ErrInvalidOwnerType
}

func approvalSnapshot(txID uint, owner domain.OwnerType, t *models.Transaction) map[string]interface{} {
	snap := map[string]interface{}{
		"transaction_id": txID,
		"owner_type":     owner,
	}
	if t != nil {
		snap["identifier"] = t.Identifier
		snap["amount_cents"] = t.AmountCents
		snap["status"] = t.Status
	}
	return snap
}
