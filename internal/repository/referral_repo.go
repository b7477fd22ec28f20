package repository

import (
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// GetByReferredModelID returns the referral record for a model that was
// referred by someone, or gorm.ErrRecordNotFound.
func (r *ReferralRepository) GetByReferredModelID(modelID uint) (*models.Referral, error) {
	var ref models.Referral
	if err := r.db.Where("referred_model_id = ?", modelID).First(&ref).Error; err != nil {
		return nil, err
	}
	return &ref, nil
}

// IncrementCompletedCount atomically bumps the qualifying booking count.
func (r *ReferralRepository) IncrementCompletedCount(referralID uint) error {
	return r.db.Model(&models.Referral{}).
		Where("id = ?", referralID).
		UpdateColumn("completed_count", gorm.Expr("completed_count + 1")).Error
}

func (r *ReferralRepository) Create(ref *models.Referral) error {
	return r.db.Create(ref).Error
}

func (r *ReferralRepository) List(page, limit int) ([]models.Referral, int64, error) {
	q := r.db.Model(&models.Referral{})
	var total int64
	q.Count(&total)
	var list []models.Referral
	err := q.Preload("Referrer").Preload("Referred").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
