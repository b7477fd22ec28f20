package repository

import (
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) GetByID(id uint) (*models.ServiceBooking, error) {
	var b models.ServiceBooking
	err := r.db.Preload("ModelService.Service").Preload("Model").Preload("Customer").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByReference(ref string) (*models.ServiceBooking, error) {
	var b models.ServiceBooking
	err := r.db.Preload("ModelService.Service").Preload("Model").Preload("Customer").
		Where("reference = ?", ref).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByHoldTransactionID(txID uint) (*models.ServiceBooking, error) {
	var b models.ServiceBooking
	err := r.db.Preload("ModelService.Service").Preload("Model").Preload("Customer").
		Where("hold_transaction_id = ?", txID).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Update(b *models.ServiceBooking) error {
	return r.db.Save(b).Error
}

func (r *BookingRepository) List(status domain.BookingStatus, page, limit int) ([]models.ServiceBooking, int64, error) {
	q := r.db.Model(&models.ServiceBooking{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.ServiceBooking
	err := q.Preload("Model").Preload("Customer").Preload("ModelService.Service").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
