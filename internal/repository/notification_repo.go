package repository

import (
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) CreateBatch(ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.CreateInBatches(ns, 200).Error
}

func (r *NotificationRepository) List(page, limit int) ([]models.Notification, int64, error) {
	q := r.db.Model(&models.Notification{})
	var total int64
	q.Count(&total)
	var list []models.Notification
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
