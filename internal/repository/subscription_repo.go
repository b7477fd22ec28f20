package repository

import (
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetPendingByTransactionID returns the pending_payment subscription referencing
// a transaction, or gorm.ErrRecordNotFound.
func (r *SubscriptionRepository) GetPendingByTransactionID(txID uint) (*models.Subscription, error) {
	var s models.Subscription
	err := r.db.Preload("Plan").
		Where("transaction_id = ? AND status = ?", txID, domain.SubscriptionPendingPayment).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepository) Update(s *models.Subscription) error {
	return r.db.Save(s).Error
}

// AppendHistory mirrors a status change into the subscription history timeline.
func (r *SubscriptionRepository) AppendHistory(subscriptionID uint, status domain.SubscriptionStatus, note string) error {
	return r.db.Create(&models.SubscriptionHistory{
		SubscriptionID: subscriptionID,
		Status:         status,
		Note:           note,
	}).Error
}

// UpdateHistoryStatus rewrites pending history rows when a subscription is
// expired before ever activating.
func (r *SubscriptionRepository) UpdateHistoryStatus(subscriptionID uint, from, to domain.SubscriptionStatus) error {
	return r.db.Model(&models.SubscriptionHistory{}).
		Where("subscription_id = ? AND status = ?", subscriptionID, from).
		Update("status", to).Error
}

func (r *SubscriptionRepository) List(status domain.SubscriptionStatus, page, limit int) ([]models.Subscription, int64, error) {
	q := r.db.Model(&models.Subscription{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Subscription
	err := q.Preload("Plan").Preload("Customer").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
