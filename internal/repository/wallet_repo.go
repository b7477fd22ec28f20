package repository

import (
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByOwner(owner domain.OwnerType, ownerID uint) (*models.Wallet, error) {
	var w models.Wallet
	q := r.db
	if owner == domain.OwnerModel {
		q = q.Where("model_id = ?", ownerID)
	} else {
		q = q.Where("customer_id = ?", ownerID)
	}
	if err := q.First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// GetOrCreate returns the owner's wallet, lazily creating an active zero-balance
// wallet on first approval.
func (r *WalletRepository) GetOrCreate(owner domain.OwnerType, ownerID uint) (*models.Wallet, error) {
	w, err := r.GetByOwner(owner, ownerID)
	if err == nil {
		return w, nil
	}
	w = &models.Wallet{Status: domain.WalletActive, Currency: "USD"}
	if owner == domain.OwnerModel {
		w.ModelID = &ownerID
	} else {
		w.CustomerID = &ownerID
	}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WalletRepository) Update(w *models.Wallet) error {
	return r.db.Save(w).Error
}

// List returns wallets with owners preloaded, newest first.
func (r *WalletRepository) List(owner domain.OwnerType, page, limit int) ([]models.Wallet, int64, error) {
	q := r.db.Model(&models.Wallet{})
	switch owner {
	case domain.OwnerModel:
		q = q.Where("model_id IS NOT NULL")
	case domain.OwnerCustomer:
		q = q.Where("customer_id IS NOT NULL")
	}
	var total int64
	q.Count(&total)
	var list []models.Wallet
	err := q.Preload("Model").Preload("Customer").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}

func (r *WalletRepository) GetByID(id uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Preload("Model").Preload("Customer").First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}
