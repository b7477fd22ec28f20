package service

import (
	"encoding/json"
	"errors"
	"log"
	"regexp"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"
	"github.com/xaosao/xaosao-admin-sub001/internal/ws"

	"gorm.io/gorm"
)

// Audit log actions emitted by the ledger workflows.
const (
	ActionApproveTransaction = "approve_transaction"
	ActionRejectTransaction  = "reject_transaction"
	ActionRefundBookingHold  = "refund_booking_hold"
	ActionCompleteBooking    = "complete_booking_hold"
)

// LedgerService owns every admin workflow that moves money: approval,
// rejection, held-transaction refund and completion. Each workflow runs inside
// a single database transaction; side effects (notifications, subscription
// events) are enqueued to the outbox within that transaction and delivered by
// the dispatcher afterwards. Audit rows are written outside the transaction so
// failed invocations still leave a trace.
type LedgerService struct {
	db        *gorm.DB
	referrals *ReferralService
	feed      *ws.Hub // nil when the live feed is disabled
}

func NewLedgerService(db *gorm.DB, referrals *ReferralService, feed *ws.Hub) *LedgerService {
	return &LedgerService{db: db, referrals: referrals, feed: feed}
}

// ApplyBalanceChange mutates w for an approved transaction of the given
// identifier. Recharges credit the balance; withdraw/withdrawal/deposit all
// debit the withdrawable side after an available-balance check. The caller
// persists w.
func ApplyBalanceChange(w *models.Wallet, identifier domain.TransactionIdentifier, amountCents int64) error {
	switch {
	case identifier == domain.TxRecharge:
		w.TotalBalanceCents += amountCents
		w.TotalRechargeCents += amountCents
	case identifier.IsWithdrawalLike():
		if w.TotalBalanceCents-w.TotalWithdrawCents < amountCents {
			return ErrInsufficientBalance
		}
		w.TotalWithdrawCents += amountCents
	default:
		return ErrUnknownTransactionType
	}
	return nil
}

// SplitCommission splits a positive total into platform commission and model
// net using truncating integer division. floor(total*rate/100), never rounded.
func SplitCommission(totalCents int64, ratePercent int) (commissionCents, netCents int64) {
	commissionCents = totalCents * int64(ratePercent) / 100
	return commissionCents, totalCents - commissionCents
}

var bookingRefPattern = regexp.MustCompile(`booking\s*#([A-Za-z0-9_-]+)`)

// resolveBooking finds the booking behind a hold transaction. The structured
// BookingID column wins; rows written before that column existed fall back to
// the hold back-reference, then to the "booking #<ref>" fragment in the
// free-text reason.
func resolveBooking(tx *gorm.DB, t *models.Transaction) (*models.ServiceBooking, error) {
	bookings := repository.NewBookingRepository(tx)
	if t.BookingID != nil {
		b, err := bookings.GetByID(*t.BookingID)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if b, err := bookings.GetByHoldTransactionID(t.ID); err == nil {
		return b, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	m := bookingRefPattern.FindStringSubmatch(t.Reason)
	if m == nil {
		return nil, ErrMissingBooking
	}
	b, err := bookings.GetByReference(m[1])
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingBooking
		}
		return nil, err
	}
	return b, nil
}

// audit writes one append-only row per workflow invocation. Failures here are
// logged, never propagated: audit must not take down a finished workflow.
func (s *LedgerService) audit(userID uint, action, description string, workflowErr error, payload interface{}) {
	l := &models.AuditLog{
		UserID:      &userID,
		Action:      action,
		Description: description,
	}
	snapshot, _ := json.Marshal(payload)
	if workflowErr != nil {
		l.Status = domain.AuditFailed
		errBody, _ := json.Marshal(map[string]interface{}{"error": workflowErr.Error(), "input": payload})
		l.OnError = string(errBody)
	} else {
		l.Status = domain.AuditSuccess
		l.OnSuccess = string(snapshot)
	}
	if err := repository.NewAuditLogRepository(s.db).Create(l); err != nil {
		log.Printf("[Ledger] audit write failed for %s: %v", action, err)
	}
}

// broadcast pushes a workflow outcome to the admin live feed.
func (s *LedgerService) broadcast(event string, payload interface{}) {
	if s.feed == nil {
		return
	}
	s.feed.Broadcast(map[string]interface{}{"event": event, "data": payload})
}

// enqueueNotification persists a notification event to the outbox inside tx.
func enqueueNotification(tx *gorm.DB, ev NotificationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return repository.NewOutboxRepository(tx).Create(&models.OutboxEvent{
		Topic:   models.OutboxTopicNotification,
		Payload: string(body),
	})
}

// enqueueSubscriptionEvent persists a client-backend subscription event to the
// outbox inside tx.
func enqueueSubscriptionEvent(tx *gorm.DB, ev SubscriptionEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return repository.NewOutboxRepository(tx).Create(&models.OutboxEvent{
		Topic:   models.OutboxTopicSubscriptionEvent,
		Payload: string(body),
	})
}
