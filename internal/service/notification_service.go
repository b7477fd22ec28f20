package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xaosao/xaosao-admin-sub001/internal/models"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"
)

// Notification kinds carried through the outbox.
const (
	NotifyTransactionApproved = "transaction_approved"
	NotifyTransactionRejected = "transaction_rejected"
	NotifyBookingRefunded     = "booking_refunded"
	NotifyBookingCompleted    = "booking_completed"
)

// NotificationEvent is the outbox payload for a workflow notification.
type NotificationEvent struct {
	Kind            string `json:"kind"`
	TransactionID   uint   `json:"transaction_id"`
	ModelID         *uint  `json:"model_id,omitempty"`
	CustomerID      *uint  `json:"customer_id,omitempty"`
	BookingID       *uint  `json:"booking_id,omitempty"`
	AmountCents     int64  `json:"amount_cents"`
	CommissionCents int64  `json:"commission_cents,omitempty"`
	ReferrerModelID *uint  `json:"referrer_model_id,omitempty"`
	ReferralCents   int64  `json:"referral_cents,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// NotificationService persists in-app notifications and pushes to admin FCM
// tokens. fcm may be nil when Firebase is not configured.
type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	fcm      *FCMService
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, fcm *FCMService) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, fcm: fcm}
}

// Deliver turns an outbox notification event into stored notifications and an
// admin push. Called by the outbox dispatcher; an error leaves the event
// pending for retry.
func (s *NotificationService) Deliver(ctx context.Context, ev NotificationEvent) error {
	title, body := renderNotification(ev)
	data, _ := json.Marshal(ev)
	n := &models.Notification{
		ModelID:    ev.ModelID,
		CustomerID: ev.CustomerID,
		Type:       ev.Kind,
		Title:      title,
		Body:       body,
		Data:       string(data),
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	s.pushToAdmins(ctx, ev.Kind, title, body)
	return nil
}

// Broadcast stores a notification for every given recipient pair and pushes to
// admins. Used by the admin broadcast endpoint.
func (s *NotificationService) Broadcast(ctx context.Context, notifType, title, body string, modelIDs, customerIDs []uint) (int, error) {
	ns := make([]models.Notification, 0, len(modelIDs)+len(customerIDs))
	for i := range modelIDs {
		ns = append(ns, models.Notification{ModelID: &modelIDs[i], Type: notifType, Title: title, Body: body})
	}
	for i := range customerIDs {
		ns = append(ns, models.Notification{CustomerID: &customerIDs[i], Type: notifType, Title: title, Body: body})
	}
	if err := s.repo.CreateBatch(ns); err != nil {
		return 0, err
	}
	s.pushToAdmins(ctx, notifType, title, body)
	return len(ns), nil
}

func (s *NotificationService) pushToAdmins(ctx context.Context, notifType, title, body string) {
	if s.fcm == nil || s.userRepo == nil {
		return
	}
	tokens, err := s.userRepo.ListAdminFCMTokens()
	if err != nil {
		return
	}
	for _, token := range tokens {
		_ = s.fcm.Send(ctx, token, title, body, map[string]string{"type": notifType})
	}
}

func renderNotification(ev NotificationEvent) (title, body string) {
	switch ev.Kind {
	case NotifyTransactionApproved:
		return "Transaction approved", fmt.Sprintf("Transaction %d for %d cents was approved.", ev.TransactionID, ev.AmountCents)
	case NotifyTransactionRejected:
		return "Transaction rejected", fmt.Sprintf("Transaction %d was rejected: %s", ev.TransactionID, ev.Reason)
	case NotifyBookingRefunded:
		return "Booking refunded", fmt.Sprintf("Booking hold %d was refunded (%d cents returned).", ev.TransactionID, ev.AmountCents)
	case NotifyBookingCompleted:
		if ev.ReferrerModelID != nil {
			return "Booking completed", fmt.Sprintf("Booking %d released: %d cents to model (commission %d), referral payout %d cents to model %d.",
				ev.TransactionID, ev.AmountCents, ev.CommissionCents, ev.ReferralCents, *ev.ReferrerModelID)
		}
		return "Booking completed", fmt.Sprintf("Booking %d released: %d cents to model (commission %d).", ev.TransactionID, ev.AmountCents, ev.CommissionCents)
	}
	return ev.Kind, ""
}
